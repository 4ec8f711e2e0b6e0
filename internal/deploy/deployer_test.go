package deploy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shaiso/makeblueprint/internal/blueprint"
	"github.com/shaiso/makeblueprint/internal/makeapi"
)

// fakeAPI — заглушка Make.com API для deploy-тестов.
type fakeAPI struct {
	nextHookID      int
	createdHooks    []makeapi.CreateWebhookRequest
	scenarioCreated *makeapi.CreateScenarioRequest
	failHookDetail  map[int]bool // детали этих hook'ов недоступны
	failCreateHook  bool
}

func (f *fakeAPI) CreateWebhook(_ context.Context, req makeapi.CreateWebhookRequest) (*makeapi.Hook, error) {
	if f.failCreateHook {
		return nil, errors.New("hook quota exceeded")
	}
	f.createdHooks = append(f.createdHooks, req)
	f.nextHookID++
	return &makeapi.Hook{ID: f.nextHookID, Name: req.Name, URL: "https://hook.us2.make.com/h"}, nil
}

func (f *fakeAPI) GetHook(_ context.Context, hookID int) (*makeapi.Hook, error) {
	if f.failHookDetail[hookID] {
		return nil, &makeapi.APIError{StatusCode: 500}
	}
	return &makeapi.Hook{ID: hookID, Name: "Hook", URL: "https://hook.us2.make.com/h"}, nil
}

func (f *fakeAPI) CreateScenario(_ context.Context, req makeapi.CreateScenarioRequest) (*makeapi.Scenario, error) {
	f.scenarioCreated = &req
	return &makeapi.Scenario{ID: 777, Name: req.Name}, nil
}

func TestCreateScenarioWithFreshHooks(t *testing.T) {
	api := &fakeAPI{nextHookID: 9000}
	d := NewDeployer(api, nil)

	text := []byte(`{"name":"Order Flow","flow":[{"id":1,"parameters":{"hook":111}},{"id":2,"parameters":{"hook":222}}]}`)

	result, err := d.CreateScenarioWithFreshHooksJSON(context.Background(), text, Options{NamePrefix: "Fresh"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Scenario.ID != 777 {
		t.Errorf("expected scenario 777, got %+v", result.Scenario)
	}
	// Имя взято из blueprint'а
	if api.scenarioCreated.Name != "Order Flow" {
		t.Errorf("expected scenario name from blueprint, got %q", api.scenarioCreated.Name)
	}

	// Два webhook'а с нужным типом и префиксом
	if len(api.createdHooks) != 2 {
		t.Fatalf("expected 2 created webhooks, got %d", len(api.createdHooks))
	}
	for _, req := range api.createdHooks {
		if req.TypeName != makeapi.HookTypeGateway {
			t.Errorf("expected gateway-webhook, got %q", req.TypeName)
		}
		if !strings.HasPrefix(req.Name, "Fresh ") {
			t.Errorf("expected Fresh prefix, got %q", req.Name)
		}
		if req.Method || req.Headers || req.Stringify {
			t.Errorf("expected disabled capture flags, got %+v", req)
		}
	}

	// Mapping полон, blueprint в запросе переписан
	if len(result.Mapping) != 2 {
		t.Errorf("expected mapping of 2, got %v", result.Mapping)
	}
	if strings.Contains(api.scenarioCreated.Blueprint, "111") || strings.Contains(api.scenarioCreated.Blueprint, "222") {
		t.Errorf("expected hardcoded hooks replaced, got %s", api.scenarioCreated.Blueprint)
	}

	// Обогащение: по записи на каждый созданный webhook
	if len(result.Webhooks) != 2 {
		t.Fatalf("expected 2 webhook infos, got %d", len(result.Webhooks))
	}
	if result.Webhooks[0].ReplacedHookID != 111 || result.Webhooks[0].URL == "" {
		t.Errorf("unexpected webhook info: %+v", result.Webhooks[0])
	}
}

func TestCreateScenarioWithFreshHooks_InvalidJSON(t *testing.T) {
	api := &fakeAPI{}
	d := NewDeployer(api, nil)

	_, err := d.CreateScenarioWithFreshHooksJSON(context.Background(), []byte(`{"flow": [`), Options{})
	if !errors.Is(err, blueprint.ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}

	// Fail fast: никаких сетевых вызовов до валидации
	if len(api.createdHooks) != 0 || api.scenarioCreated != nil {
		t.Error("expected no API calls for malformed blueprint")
	}
}

func TestCreateScenarioWithFreshHooks_DetailFetchFailureSkipped(t *testing.T) {
	api := &fakeAPI{nextHookID: 9000, failHookDetail: map[int]bool{9001: true}}
	d := NewDeployer(api, nil)

	text := []byte(`{"flow":[{"hook":1},{"hook":2}]}`)
	result, err := d.CreateScenarioWithFreshHooksJSON(context.Background(), text, Options{})
	if err != nil {
		t.Fatalf("deploy must survive detail fetch failure: %v", err)
	}

	// Hook 1 -> 9001 (детали недоступны, пропущен), hook 2 -> 9002
	if len(result.Webhooks) != 1 {
		t.Fatalf("expected 1 webhook info, got %d", len(result.Webhooks))
	}
	if result.Webhooks[0].ID != 9002 || result.Webhooks[0].ReplacedHookID != 2 {
		t.Errorf("unexpected surviving webhook: %+v", result.Webhooks[0])
	}
	// Mapping при этом полный
	if len(result.Mapping) != 2 {
		t.Errorf("expected full mapping, got %v", result.Mapping)
	}
}

func TestCreateScenarioWithFreshHooks_SeedSkipsProvisioning(t *testing.T) {
	api := &fakeAPI{}
	d := NewDeployer(api, nil)

	text := []byte(`{"name":"S","flow":[{"parameters":{"hook":500}}]}`)
	result, err := d.CreateScenarioWithFreshHooksJSON(context.Background(), text, Options{
		Seed: map[int]int{500: 600},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.createdHooks) != 0 {
		t.Errorf("expected no provisioning with full seed, got %d calls", len(api.createdHooks))
	}
	if !strings.Contains(api.scenarioCreated.Blueprint, "600") {
		t.Errorf("expected seeded id in blueprint, got %s", api.scenarioCreated.Blueprint)
	}
	if result.Mapping[500] != 600 {
		t.Errorf("expected seed mapping in result, got %v", result.Mapping)
	}
}

func TestCreateScenarioWithFreshHooks_ProvisioningFailure(t *testing.T) {
	api := &fakeAPI{failCreateHook: true}
	d := NewDeployer(api, nil)

	text := []byte(`{"flow":[{"hook":1}]}`)
	_, err := d.CreateScenarioWithFreshHooksJSON(context.Background(), text, Options{})
	if err == nil {
		t.Fatal("expected provisioning failure")
	}

	var perr *blueprint.ProvisionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProvisionError, got %v", err)
	}
	// Сценарий не создан: deploy прерван до него
	if api.scenarioCreated != nil {
		t.Error("expected no scenario after provisioning failure")
	}
}

func TestCreateScenarioWithFreshHooks_ExplicitNameWins(t *testing.T) {
	api := &fakeAPI{}
	d := NewDeployer(api, nil)

	text := []byte(`{"name":"From Blueprint","flow":[]}`)
	_, err := d.CreateScenarioWithFreshHooksJSON(context.Background(), text, Options{Name: "Override"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.scenarioCreated.Name != "Override" {
		t.Errorf("expected explicit name, got %q", api.scenarioCreated.Name)
	}
}
