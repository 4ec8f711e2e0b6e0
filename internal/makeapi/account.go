package makeapi

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// Me возвращает владельца API-токена.
// Ответ приходит в конверте "authUser".
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		AuthUser User `json:"authUser"`
	}
	if err := c.get(ctx, "/users/me", nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("retrieved user info", "name", resp.AuthUser.Name)
	return &resp.AuthUser, nil
}

// Organizations возвращает организации пользователя.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	var resp struct {
		Organizations []Organization `json:"organizations"`
	}
	if err := c.get(ctx, "/organizations", nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("retrieved organizations", "count", len(resp.Organizations))
	return resp.Organizations, nil
}

// Teams возвращает команды организации.
// Endpoint /teams требует organizationId.
func (c *Client) Teams(ctx context.Context, organizationID int) ([]Team, error) {
	params := url.Values{}
	params.Set("organizationId", strconv.Itoa(organizationID))

	var resp struct {
		Teams []Team `json:"teams"`
	}
	if err := c.get(ctx, "/teams", params, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("retrieved teams", "organization_id", organizationID, "count", len(resp.Teams))
	return resp.Teams, nil
}

// UserTeamRole возвращает роль пользователя в команде.
// 404 означает, что пользователь в команде не состоит.
func (c *Client) UserTeamRole(ctx context.Context, teamID, userID int) (*UserTeamRole, error) {
	var resp struct {
		UserTeamRole UserTeamRole `json:"userTeamRole"`
	}
	path := "/teams/" + strconv.Itoa(teamID) + "/user-team-roles/" + strconv.Itoa(userID)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	return &resp.UserTeamRole, nil
}

// UserTeams собирает команды, в которых у пользователя есть роль.
//
// Обходит все организации и их команды, по каждой проверяя роль через
// UserTeamRole. 404 по конкретной команде — норма (пользователь не
// состоит), прочие ошибки логируются и команда пропускается.
func (c *Client) UserTeams(ctx context.Context) ([]Team, error) {
	user, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}

	orgs, err := c.Organizations(ctx)
	if err != nil {
		return nil, err
	}

	var teams []Team
	for _, org := range orgs {
		orgTeams, err := c.Teams(ctx, org.ID)
		if err != nil {
			c.logger.Warn("failed to list teams for organization", "organization_id", org.ID, "error", err)
			continue
		}

		for _, team := range orgTeams {
			if _, err := c.UserTeamRole(ctx, team.ID, user.ID); err != nil {
				var apiErr *APIError
				if errors.As(err, &apiErr) && apiErr.IsNotFound() {
					continue
				}
				c.logger.Warn("failed to check team role", "team_id", team.ID, "error", err)
				continue
			}
			teams = append(teams, team)
		}
	}

	c.logger.Info("found teams with user access", "count", len(teams))
	return teams, nil
}
