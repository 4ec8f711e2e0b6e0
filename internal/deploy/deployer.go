package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shaiso/makeblueprint/internal/blueprint"
	"github.com/shaiso/makeblueprint/internal/makeapi"
)

// API — операции Make.com API, нужные для deploy.
// Реализуется *makeapi.Client; в тестах подменяется заглушкой.
type API interface {
	CreateWebhook(ctx context.Context, req makeapi.CreateWebhookRequest) (*makeapi.Hook, error)
	GetHook(ctx context.Context, hookID int) (*makeapi.Hook, error)
	CreateScenario(ctx context.Context, req makeapi.CreateScenarioRequest) (*makeapi.Scenario, error)
}

// Options — параметры deploy.
type Options struct {
	Name       string         // имя сценария; пустое — из blueprint'а
	FolderID   int            // папка; 0 — корень
	Scheduling map[string]any // nil — расписание по умолчанию
	NamePrefix string         // префикс имён webhook'ов; пустой — blueprint.DefaultNamePrefix
	Seed       map[int]int    // сохранённый mapping прошлых запусков
}

// WebhookInfo — созданный webhook в результате deploy.
type WebhookInfo struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	URL            string `json:"url"`
	ReplacedHookID int    `json:"replaced_hook_id"`
}

// Result — итог deploy.
type Result struct {
	Scenario *makeapi.Scenario `json:"scenario"`
	Webhooks []WebhookInfo     `json:"webhooks"`
	Mapping  map[int]int       `json:"mapping"`
}

// Deployer разворачивает blueprint'ы через Make.com API.
type Deployer struct {
	api    API
	logger *slog.Logger
}

// NewDeployer создаёт Deployer.
func NewDeployer(api API, logger *slog.Logger) *Deployer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deployer{api: api, logger: logger}
}

// hookCreator адаптирует API к blueprint.HookCreator: webhook'и для
// перезаписи всегда gateway-webhook с выключенными method/headers/stringify.
type hookCreator struct {
	api API
}

func (h hookCreator) CreateHook(ctx context.Context, name string) (int, error) {
	hook, err := h.api.CreateWebhook(ctx, makeapi.CreateWebhookRequest{
		Name:     name,
		TypeName: makeapi.HookTypeGateway,
	})
	if err != nil {
		return 0, err
	}
	return hook.ID, nil
}

// CreateScenarioWithFreshHooksJSON — как CreateScenarioWithFreshHooks,
// но принимает blueprint как JSON-текст. Невалидный JSON отклоняется
// до любых сетевых вызовов.
func (d *Deployer) CreateScenarioWithFreshHooksJSON(ctx context.Context, text []byte, opts Options) (*Result, error) {
	doc, err := blueprint.Parse(text)
	if err != nil {
		return nil, err
	}
	return d.CreateScenarioWithFreshHooks(ctx, doc, opts)
}

// CreateScenarioWithFreshHooks создаёт сценарий из blueprint'а,
// заменив захардкоженные hook ID на свежесозданные webhook'и.
//
// Шаги:
//  1. Rewrite с seed из Options и провизионингом недостающих.
//  2. Создание сценария из переписанного blueprint'а.
//  3. Для каждой записи mapping — запрос деталей webhook'а (имя, URL).
//     Неудачный запрос деталей не валит deploy: сценарий уже создан,
//     запись пропускается с warning'ом.
//
// Возвращённый Result.Mapping стоит сохранить (см. internal/mapstore)
// и передать как Seed при повторном deploy того же blueprint'а — иначе
// каждый запуск создаёт новые webhook'и.
func (d *Deployer) CreateScenarioWithFreshHooks(ctx context.Context, doc map[string]any, opts Options) (*Result, error) {
	rewriter := blueprint.NewRewriter(hookCreator{api: d.api}, d.logger)

	updated, mapping, err := rewriter.Rewrite(ctx, doc, opts.Seed, true, opts.NamePrefix)
	if err != nil {
		return nil, fmt.Errorf("rewrite hooks: %w", err)
	}

	bpJSON, err := blueprint.FormatForAPI(updated)
	if err != nil {
		return nil, fmt.Errorf("format blueprint: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = blueprint.Name(doc)
	}

	scenario, err := d.api.CreateScenario(ctx, makeapi.CreateScenarioRequest{
		Blueprint:  bpJSON,
		Name:       name,
		FolderID:   opts.FolderID,
		Scheduling: opts.Scheduling,
	})
	if err != nil {
		return nil, fmt.Errorf("create scenario: %w", err)
	}

	result := &Result{
		Scenario: scenario,
		Webhooks: d.describeWebhooks(ctx, mapping),
		Mapping:  mapping,
	}

	d.logger.Info("created scenario with fresh hooks",
		"scenario_id", scenario.ID, "name", scenario.Name, "webhooks", len(result.Webhooks))
	return result, nil
}

// describeWebhooks запрашивает детали каждого webhook'а из mapping.
// Каждая запись обрабатывается независимо: успех попадает в список,
// неуспех логируется и пропускается.
func (d *Deployer) describeWebhooks(ctx context.Context, mapping map[int]int) []WebhookInfo {
	oldIDs := make([]int, 0, len(mapping))
	for oldID := range mapping {
		oldIDs = append(oldIDs, oldID)
	}
	sort.Ints(oldIDs)

	webhooks := make([]WebhookInfo, 0, len(mapping))
	for _, oldID := range oldIDs {
		newID := mapping[oldID]

		hook, err := d.api.GetHook(ctx, newID)
		if err != nil {
			d.logger.Warn("could not get webhook details", "hook_id", newID, "error", err)
			continue
		}

		webhooks = append(webhooks, WebhookInfo{
			ID:             newID,
			Name:           hook.Name,
			URL:            hook.URL,
			ReplacedHookID: oldID,
		})
	}
	return webhooks
}
