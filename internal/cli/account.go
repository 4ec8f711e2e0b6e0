package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/makeblueprint/internal/makeapi"
)

// NewAccountCmd создаёт группу команд для поиска своих ID:
// пользователя, организаций и команд.
func NewAccountCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect the API token's account",
	}

	cmd.AddCommand(
		newAccountMeCmd(clientFn, outputFn),
		newAccountOrgsCmd(clientFn, outputFn),
		newAccountTeamsCmd(clientFn, outputFn),
	)

	return cmd
}

func newAccountMeCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the token owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFn()
			if err != nil {
				return err
			}

			user, err := client.Me(cmd.Context())
			if err != nil {
				return err
			}

			outputFn().Print(
				[]string{"ID", "NAME", "EMAIL"},
				[][]string{{strconv.Itoa(user.ID), user.Name, user.Email}},
				user,
			)
			return nil
		},
	}
}

func newAccountOrgsCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	return &cobra.Command{
		Use:   "orgs",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFn()
			if err != nil {
				return err
			}

			orgs, err := client.Organizations(cmd.Context())
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "ZONE"}
			rows := make([][]string, len(orgs))
			for i, org := range orgs {
				rows[i] = []string{strconv.Itoa(org.ID), org.Name, org.Zone}
			}

			outputFn().Print(headers, rows, orgs)
			return nil
		},
	}
}

func newAccountTeamsCmd(clientFn ClientFn, outputFn OutputFn) *cobra.Command {
	var organizationID int

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams the token has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFn()
			if err != nil {
				return err
			}

			var teams []makeapi.Team
			if organizationID != 0 {
				teams, err = client.Teams(cmd.Context(), organizationID)
			} else {
				// Без организации — обход всех организаций с проверкой ролей
				teams, err = client.UserTeams(cmd.Context())
			}
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "ORGANIZATION"}
			rows := make([][]string, len(teams))
			for i, team := range teams {
				rows[i] = []string{strconv.Itoa(team.ID), team.Name, strconv.Itoa(team.OrganizationID)}
			}

			outputFn().Print(headers, rows, teams)
			return nil
		},
	}

	cmd.Flags().IntVar(&organizationID, "organization-id", 0, "List teams of one organization")
	return cmd
}
