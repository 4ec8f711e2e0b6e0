package makeapi

import (
	"context"
	"net/url"
	"strconv"
)

// HookTypeGateway — универсальный входящий webhook.
const HookTypeGateway = "gateway-webhook"

// ListHooksOpts — фильтры списка hook'ов.
type ListHooksOpts struct {
	TypeName          string // фильтр по типу (например, "gateway-webhook")
	Assigned          *bool  // фильтр по привязке к сценарию
	ViewForScenarioID int    // hook'и, доступные конкретному сценарию
}

// CreateWebhookRequest — параметры создания webhook'а.
//
// Method/Headers/Stringify управляют форматом входящих данных:
// включать ли HTTP-метод и заголовки в тело и отдавать ли JSON строкой.
type CreateWebhookRequest struct {
	Name         string
	TypeName     string // пустой — HookTypeGateway
	Method       bool
	Headers      bool
	Stringify    bool
	ConnectionID int    // для webhook'ов конкретных приложений
	FormID       string // для form-webhook'ов
}

// ListHooks возвращает hook'и команды.
func (c *Client) ListHooks(ctx context.Context, opts ListHooksOpts) ([]Hook, error) {
	params := c.defaultParams()
	if opts.TypeName != "" {
		params.Set("typeName", opts.TypeName)
	}
	if opts.Assigned != nil {
		params.Set("assigned", strconv.FormatBool(*opts.Assigned))
	}
	if opts.ViewForScenarioID != 0 {
		params.Set("viewForScenarioId", strconv.Itoa(opts.ViewForScenarioID))
	}

	var resp struct {
		Hooks []Hook `json:"hooks"`
	}
	if err := c.get(ctx, "/hooks", params, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("retrieved hooks", "count", len(resp.Hooks))
	return resp.Hooks, nil
}

// CreateWebhook создаёт webhook в команде клиента.
func (c *Client) CreateWebhook(ctx context.Context, req CreateWebhookRequest) (*Hook, error) {
	typeName := req.TypeName
	if typeName == "" {
		typeName = HookTypeGateway
	}

	body := map[string]any{
		"name":      req.Name,
		"teamId":    c.teamID,
		"typeName":  typeName,
		"method":    req.Method,
		"headers":   req.Headers,
		"stringify": req.Stringify,
	}
	if req.ConnectionID != 0 {
		body["__IMTCONN__"] = req.ConnectionID
	}
	if req.FormID != "" {
		body["formId"] = req.FormID
	}

	var resp struct {
		Hook Hook `json:"hook"`
	}
	if err := c.post(ctx, "/hooks", body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("created webhook", "name", req.Name, "hook_id", resp.Hook.ID, "url", resp.Hook.URL)
	return &resp.Hook, nil
}

// GetHook возвращает hook по ID.
func (c *Client) GetHook(ctx context.Context, hookID int) (*Hook, error) {
	var resp struct {
		Hook Hook `json:"hook"`
	}
	if err := c.get(ctx, "/hooks/"+strconv.Itoa(hookID), nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("retrieved hook details", "hook_id", hookID)
	return &resp.Hook, nil
}

// DeleteHook удаляет hook. confirmed требуется для hook'ов,
// привязанных к сценарию.
func (c *Client) DeleteHook(ctx context.Context, hookID int, confirmed bool) error {
	params := url.Values{}
	if confirmed {
		params.Set("confirmed", "true")
	}

	if err := c.delete(ctx, "/hooks/"+strconv.Itoa(hookID), params, nil); err != nil {
		return err
	}

	c.logger.Info("deleted hook", "hook_id", hookID)
	return nil
}

// RenameHook меняет имя hook'а.
func (c *Client) RenameHook(ctx context.Context, hookID int, name string) (*Hook, error) {
	var resp struct {
		Hook Hook `json:"hook"`
	}
	body := map[string]any{"name": name}
	if err := c.patch(ctx, "/hooks/"+strconv.Itoa(hookID), body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("renamed hook", "hook_id", hookID, "name", name)
	return &resp.Hook, nil
}
