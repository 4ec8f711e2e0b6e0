package blueprint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

// mustParse разбирает JSON-документ для тестов.
func mustParse(t *testing.T, text string) map[string]any {
	t.Helper()
	doc, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("parse test document: %v", err)
	}
	return doc
}

// fakeCreator — заглушка HookCreator с подсчётом вызовов.
type fakeCreator struct {
	nextID int
	calls  []string
	failOn int // номер вызова (с 1), на котором вернуть ошибку; 0 — никогда
}

func (f *fakeCreator) CreateHook(_ context.Context, name string) (int, error) {
	f.calls = append(f.calls, name)
	if f.failOn > 0 && len(f.calls) == f.failOn {
		return 0, errors.New("api unavailable")
	}
	f.nextID++
	return f.nextID, nil
}

func TestFindHooks_Shapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []int
	}{
		{
			name: "direct hook key",
			doc:  `{"hook": 42}`,
			want: []int{42},
		},
		{
			name: "hook inside parameters",
			doc:  `{"flow":[{"id":1,"module":"gateway:CustomWebHook","parameters":{"hook":836593}}]}`,
			want: []int{836593},
		},
		{
			name: "deeply nested in arrays of arrays",
			doc:  `{"routes":[[{"flow":[{"parameters":{"hook":7}}]}],[{"hook":8}]]}`,
			want: []int{7, 8},
		},
		{
			name: "duplicate ids deduplicated",
			doc:  `{"routes":[{"hook":5},{"parameters":{"hook":5}}]}`,
			want: []int{5},
		},
		{
			name: "string hook value ignored",
			doc:  `{"hook":"{{placeholder}}","parameters":{"hook":"x"}}`,
			want: nil,
		},
		{
			name: "fractional hook value ignored",
			doc:  `{"hook": 5.5}`,
			want: nil,
		},
		{
			name: "hook inside error handler branch",
			doc:  `{"flow":[{"onerror":[{"parameters":{"hook":99}}]}]}`,
			want: []int{99},
		},
		{
			name: "no hooks",
			doc:  `{"name":"empty","flow":[]}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindHooks(mustParse(t, tt.doc))

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d hooks, got %d: %v", len(tt.want), len(got), got)
			}
			for _, id := range tt.want {
				if _, ok := got[id]; !ok {
					t.Errorf("expected hook %d in result", id)
				}
			}
		})
	}
}

func TestFindHooks_NonMapInput(t *testing.T) {
	// Поиск терпим к любой форме: скаляры и массивы не ошибка
	if got := FindHooks("just a string"); len(got) != 0 {
		t.Errorf("expected no hooks for scalar, got %v", got)
	}
	if got := FindHooks(nil); len(got) != 0 {
		t.Errorf("expected no hooks for nil, got %v", got)
	}
	if got := FindHooks([]any{map[string]any{"hook": float64(3)}}); len(got) != 1 {
		t.Errorf("expected one hook for top-level array, got %v", got)
	}
}

func TestFindHooks_DoesNotMutate(t *testing.T) {
	doc := mustParse(t, `{"flow":[{"parameters":{"hook":11}},{"hook":12}]}`)
	before, _ := json.Marshal(doc)

	FindHooks(doc)

	after, _ := json.Marshal(doc)
	if !bytes.Equal(before, after) {
		t.Error("FindHooks mutated the input document")
	}
}

func TestRewrite_SingleHook(t *testing.T) {
	doc := mustParse(t, `{"flow":[{"id":1,"module":"gateway:CustomWebHook","parameters":{"hook":836593}}]}`)
	creator := &fakeCreator{nextID: 9000}
	r := NewRewriter(creator, nil)

	updated, mapping, err := r.Rewrite(context.Background(), doc, nil, true, "X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(mapping, map[int]int{836593: 9001}) {
		t.Errorf("expected mapping {836593: 9001}, got %v", mapping)
	}

	// Проверяем подстановку в parameters.hook
	flow := updated.(map[string]any)["flow"].([]any)
	params := flow[0].(map[string]any)["parameters"].(map[string]any)
	if id, _ := hookID(params["hook"]); id != 9001 {
		t.Errorf("expected parameters.hook == 9001, got %v", params["hook"])
	}

	if len(creator.calls) != 1 {
		t.Fatalf("expected exactly one provisioning call, got %d", len(creator.calls))
	}
	if creator.calls[0] != "X 836593" {
		t.Errorf("expected webhook name %q, got %q", "X 836593", creator.calls[0])
	}
}

func TestRewrite_DoesNotMutateInput(t *testing.T) {
	doc := mustParse(t, `{"flow":[{"parameters":{"hook":100}},{"routes":[{"hook":200}]}]}`)
	before, _ := json.Marshal(doc)

	r := NewRewriter(&fakeCreator{nextID: 500}, nil)
	if _, _, err := r.Rewrite(context.Background(), doc, nil, true, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := json.Marshal(doc)
	if !bytes.Equal(before, after) {
		t.Error("Rewrite mutated the input document")
	}
}

func TestRewrite_MappingComplete(t *testing.T) {
	doc := mustParse(t, `{"flow":[{"hook":1},{"parameters":{"hook":2}},{"routes":[[{"hook":3}]]}]}`)
	r := NewRewriter(&fakeCreator{nextID: 1000}, nil)

	_, mapping, err := r.Rewrite(context.Background(), doc, nil, true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for id := range FindHooks(doc) {
		if _, ok := mapping[id]; !ok {
			t.Errorf("found hook %d missing from mapping", id)
		}
	}
}

func TestRewrite_FullSeedNoProvisioning(t *testing.T) {
	doc := mustParse(t, `{"flow":[{"hook":1},{"parameters":{"hook":2}}]}`)
	creator := &fakeCreator{}
	seed := map[int]int{1: 10, 2: 20, 3: 30} // 3 в документе нет

	r := NewRewriter(creator, nil)
	_, mapping, err := r.Rewrite(context.Background(), doc, seed, true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(creator.calls) != 0 {
		t.Errorf("expected zero provisioning calls, got %d", len(creator.calls))
	}
	// mapping — это seed, ограниченный найденными ID
	if !reflect.DeepEqual(mapping, map[int]int{1: 10, 2: 20}) {
		t.Errorf("expected seed restricted to found ids, got %v", mapping)
	}
	// seed не изменён
	if !reflect.DeepEqual(seed, map[int]int{1: 10, 2: 20, 3: 30}) {
		t.Errorf("seed mapping was mutated: %v", seed)
	}
}

func TestRewrite_RoundTripSubstitution(t *testing.T) {
	src := `{"flow":[{"id":1,"parameters":{"hook":5}},{"id":2,"hook":6},{"note":"keep"}]}`
	doc := mustParse(t, src)

	r := NewRewriter(&fakeCreator{nextID: 100}, nil)
	updated, mapping, err := r.Rewrite(context.Background(), doc, nil, true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Ручное применение mapping к оригиналу воспроизводит результат
	expected := deepCopy(doc)
	replaceHooks(expected, mapping)

	gotJSON, _ := json.Marshal(updated)
	wantJSON, _ := json.Marshal(expected)
	if !bytes.Equal(gotJSON, wantJSON) {
		t.Errorf("round-trip mismatch:\n got %s\nwant %s", gotJSON, wantJSON)
	}

	// Незатронутые значения не дрейфуют
	if !strings.Contains(string(gotJSON), `"note":"keep"`) {
		t.Errorf("unrelated value drifted: %s", gotJSON)
	}
}

func TestRewrite_RepeatedIDAcrossBranches(t *testing.T) {
	doc := mustParse(t, `{"routes":[[{"parameters":{"hook":77}}],[{"parameters":{"hook":77}}]]}`)
	creator := &fakeCreator{nextID: 300}

	r := NewRewriter(creator, nil)
	updated, mapping, err := r.Rewrite(context.Background(), doc, nil, true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Дедупликация: один вызов на повторяющийся ID
	if len(creator.calls) != 1 {
		t.Fatalf("expected one provisioning call for duplicate id, got %d", len(creator.calls))
	}
	if mapping[77] != 301 {
		t.Fatalf("expected mapping 77 -> 301, got %v", mapping)
	}

	// Оба вхождения заменены одним и тем же новым ID
	routes := updated.(map[string]any)["routes"].([]any)
	for i, branch := range routes {
		params := branch.([]any)[0].(map[string]any)["parameters"].(map[string]any)
		if id, _ := hookID(params["hook"]); id != 301 {
			t.Errorf("branch %d: expected hook 301, got %v", i, params["hook"])
		}
	}
}

func TestRewrite_SeededMappingSkipsProvisioning(t *testing.T) {
	doc := mustParse(t, `{"flow":[{"parameters":{"hook":111}}]}`)
	creator := &fakeCreator{}

	r := NewRewriter(creator, nil)
	updated, mapping, err := r.Rewrite(context.Background(), doc, map[int]int{111: 222}, true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(creator.calls) != 0 {
		t.Errorf("expected no provisioning calls, got %d", len(creator.calls))
	}
	if mapping[111] != 222 {
		t.Errorf("expected mapping 111 -> 222, got %v", mapping)
	}

	params := updated.(map[string]any)["flow"].([]any)[0].(map[string]any)["parameters"].(map[string]any)
	if id, _ := hookID(params["hook"]); id != 222 {
		t.Errorf("expected rewritten hook 222, got %v", params["hook"])
	}
}

func TestRewrite_CreateMissingFalse(t *testing.T) {
	doc := mustParse(t, `{"flow":[{"parameters":{"hook":555}}]}`)
	before, _ := json.Marshal(doc)

	// Захватываем лог, чтобы убедиться в warning
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	r := NewRewriter(nil, logger)
	updated, mapping, err := r.Rewrite(context.Background(), doc, nil, false, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(mapping) != 0 {
		t.Errorf("expected empty mapping, got %v", mapping)
	}

	// Документ не изменён: 555 остаётся на месте
	after, _ := json.Marshal(updated)
	if !bytes.Equal(before, after) {
		t.Errorf("expected unchanged document, got %s", after)
	}

	if !strings.Contains(logBuf.String(), "level=WARN") ||
		!strings.Contains(logBuf.String(), "hook_id=555") {
		t.Errorf("expected warning about unmapped hook 555, log: %s", logBuf.String())
	}
}

func TestRewrite_ProvisioningFailureMidLoop(t *testing.T) {
	doc := mustParse(t, `{"flow":[{"hook":10},{"hook":20}]}`)
	creator := &fakeCreator{nextID: 40, failOn: 2}

	r := NewRewriter(creator, nil)
	_, _, err := r.Rewrite(context.Background(), doc, nil, true, "")
	if err == nil {
		t.Fatal("expected provisioning error")
	}

	var perr *ProvisionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProvisionError, got %T: %v", err, err)
	}
	// Провизионинг идёт в возрастающем порядке ID: падает второй (20)
	if perr.HookID != 20 {
		t.Errorf("expected failure on hook 20, got %d", perr.HookID)
	}

	// Первый webhook создан ровно один раз и не откатывается
	if len(creator.calls) != 2 {
		t.Fatalf("expected 2 creation attempts, got %d", len(creator.calls))
	}
	if !strings.HasSuffix(creator.calls[0], " 10") {
		t.Errorf("expected first call for hook 10, got %q", creator.calls[0])
	}
}

func TestRewrite_NoCreatorWithCreateMissing(t *testing.T) {
	doc := mustParse(t, `{"hook":1}`)
	r := NewRewriter(nil, nil)

	_, _, err := r.Rewrite(context.Background(), doc, nil, true, "")
	if !errors.Is(err, ErrNoCreator) {
		t.Errorf("expected ErrNoCreator, got %v", err)
	}
}

func TestRewrite_DefaultNamePrefix(t *testing.T) {
	doc := mustParse(t, `{"hook":9}`)
	creator := &fakeCreator{}

	r := NewRewriter(creator, nil)
	if _, _, err := r.Rewrite(context.Background(), doc, nil, true, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if creator.calls[0] != DefaultNamePrefix+" 9" {
		t.Errorf("expected default prefix, got %q", creator.calls[0])
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"flow": [`))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
}
