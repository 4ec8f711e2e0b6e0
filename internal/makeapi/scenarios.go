package makeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shaiso/makeblueprint/internal/blueprint"
)

// CreateScenarioRequest — параметры создания сценария.
type CreateScenarioRequest struct {
	Blueprint  string         // blueprint в виде компактного JSON
	Name       string         // имя сценария; пустое — "Untitled Scenario"
	FolderID   int            // папка; 0 — корень
	Scheduling map[string]any // nil — {"type": "indefinitely"}
}

// ListScenarios возвращает сценарии команды или организации.
// При activeOnly отдаются только активные.
func (c *Client) ListScenarios(ctx context.Context, activeOnly bool) ([]Scenario, error) {
	params := c.defaultParams()
	if activeOnly {
		params.Set("isActive", "true")
	}

	var resp struct {
		Scenarios []Scenario `json:"scenarios"`
	}
	if err := c.get(ctx, "/scenarios", params, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("retrieved scenarios", "count", len(resp.Scenarios))
	return resp.Scenarios, nil
}

// GetBlueprint возвращает blueprint существующего сценария.
// Ответ приходит в конверте "response".
func (c *Client) GetBlueprint(ctx context.Context, scenarioID int) (map[string]any, error) {
	var resp struct {
		Response map[string]any `json:"response"`
	}
	if err := c.get(ctx, "/scenarios/"+strconv.Itoa(scenarioID)+"/blueprint", nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("retrieved scenario blueprint", "scenario_id", scenarioID)
	return resp.Response, nil
}

// CreateScenario создаёт сценарий из blueprint'а.
//
// teamId/organizationId из настроек клиента добавляются в тело запроса.
// Scheduling всегда передаётся: либо заданный, либо {"type":"indefinitely"} —
// без него API отклоняет запрос.
func (c *Client) CreateScenario(ctx context.Context, req CreateScenarioRequest) (*Scenario, error) {
	name := req.Name
	if name == "" {
		name = "Untitled Scenario"
	}

	body := map[string]any{
		"blueprint": req.Blueprint,
		"name":      name,
	}
	for key, values := range c.defaultParams() {
		body[key] = values[0]
	}
	if req.FolderID != 0 {
		body["folderId"] = req.FolderID
	}

	scheduling := req.Scheduling
	if scheduling == nil {
		scheduling = map[string]any{"type": "indefinitely"}
	}
	schedulingJSON, err := json.Marshal(scheduling)
	if err != nil {
		return nil, fmt.Errorf("marshal scheduling: %w", err)
	}
	body["scheduling"] = string(schedulingJSON)

	var resp struct {
		Scenario Scenario `json:"scenario"`
	}
	if err := c.post(ctx, "/scenarios", body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("created scenario", "name", name, "scenario_id", resp.Scenario.ID)
	return &resp.Scenario, nil
}

// CloneScenario клонирует сценарий: забирает blueprint источника,
// применяет hookMapping (чистая подстановка, без провизионинга) и
// создаёт новый сценарий.
//
// Маппинг connection'ов не поддерживается: соединения привязаны к
// команде и переносятся средствами самого Make.com.
func (c *Client) CloneScenario(ctx context.Context, sourceID int, newName string, hookMapping map[int]int) (*Scenario, error) {
	source, err := c.GetBlueprint(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get source blueprint: %w", err)
	}

	doc := any(source)
	if len(hookMapping) > 0 {
		rewriter := blueprint.NewRewriter(nil, c.logger)
		doc, _, err = rewriter.Rewrite(ctx, doc, hookMapping, false, "")
		if err != nil {
			return nil, fmt.Errorf("apply hook mapping: %w", err)
		}
	}

	bpJSON, err := blueprint.FormatForAPI(doc)
	if err != nil {
		return nil, fmt.Errorf("format blueprint: %w", err)
	}

	cloned, err := c.CreateScenario(ctx, CreateScenarioRequest{Blueprint: bpJSON, Name: newName})
	if err != nil {
		return nil, err
	}

	c.logger.Info("cloned scenario", "source_id", sourceID, "scenario_id", cloned.ID)
	return cloned, nil
}

// UpdateBlueprint заменяет blueprint существующего сценария.
// scheduling nil — расписание не меняется.
func (c *Client) UpdateBlueprint(ctx context.Context, scenarioID int, blueprintJSON string, scheduling map[string]any) (*Scenario, error) {
	body := map[string]any{"blueprint": blueprintJSON}

	if scheduling != nil {
		schedulingJSON, err := json.Marshal(scheduling)
		if err != nil {
			return nil, fmt.Errorf("marshal scheduling: %w", err)
		}
		body["scheduling"] = string(schedulingJSON)
	}

	var resp struct {
		Scenario Scenario `json:"scenario"`
	}
	if err := c.patch(ctx, "/scenarios/"+strconv.Itoa(scenarioID), body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("updated scenario blueprint", "scenario_id", scenarioID)
	return &resp.Scenario, nil
}

// ActivateScenario включает сценарий.
func (c *Client) ActivateScenario(ctx context.Context, scenarioID int) (*Scenario, error) {
	return c.setActive(ctx, scenarioID, true)
}

// DeactivateScenario выключает сценарий.
func (c *Client) DeactivateScenario(ctx context.Context, scenarioID int) (*Scenario, error) {
	return c.setActive(ctx, scenarioID, false)
}

func (c *Client) setActive(ctx context.Context, scenarioID int, active bool) (*Scenario, error) {
	var resp struct {
		Scenario Scenario `json:"scenario"`
	}
	body := map[string]any{"isActive": active}
	if err := c.patch(ctx, "/scenarios/"+strconv.Itoa(scenarioID), body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("toggled scenario", "scenario_id", scenarioID, "is_active", active)
	return &resp.Scenario, nil
}

// RunScenario запускает сценарий вручную.
// data — входные данные для триггера (может быть nil).
func (c *Client) RunScenario(ctx context.Context, scenarioID int, data map[string]any) (*RunResult, error) {
	body := map[string]any{}
	if data != nil {
		body["data"] = data
	}

	var result RunResult
	if err := c.post(ctx, "/scenarios/"+strconv.Itoa(scenarioID)+"/run", body, &result); err != nil {
		return nil, err
	}

	c.logger.Info("started scenario execution", "scenario_id", scenarioID, "execution_id", result.ExecutionID)
	return &result, nil
}

// DeleteScenario удаляет сценарий.
func (c *Client) DeleteScenario(ctx context.Context, scenarioID int) error {
	if err := c.delete(ctx, "/scenarios/"+strconv.Itoa(scenarioID), nil, nil); err != nil {
		c.logger.Error("failed to delete scenario", "scenario_id", scenarioID, "error", err)
		return err
	}

	c.logger.Info("deleted scenario", "scenario_id", scenarioID)
	return nil
}
