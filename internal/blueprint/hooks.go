package blueprint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
)

// DefaultNamePrefix — префикс имени для автоматически создаваемых webhook'ов.
const DefaultNamePrefix = "Auto-created Webhook"

// HookCreator — провизионинг webhook'ов для Rewriter.
//
// Реализация должна создавать входящий webhook общего вида
// ("gateway-webhook" в терминах Make.com) с выключенными флагами
// method/headers/stringify и возвращать ID созданного ресурса.
type HookCreator interface {
	CreateHook(ctx context.Context, name string) (int, error)
}

// FindHooks рекурсивно находит все hardcoded hook ID в документе.
//
// Распознаются две формы:
//   - mapping с ключом "hook" и целочисленным значением;
//   - mapping с ключом "parameters", значение которого — mapping
//     с целочисленным "hook".
//
// Обход заходит в каждый mapping и каждый элемент каждого массива,
// поэтому ссылки находятся на любой глубине: внутри parameters, внутри
// веток route, внутри error handler'ов. Нецелочисленные значения "hook"
// (например, строковые плейсхолдеры) молча пропускаются.
//
// Функция чистая: документ не изменяется.
func FindHooks(node any) map[int]struct{} {
	hooks := make(map[int]struct{})
	findHooks(node, hooks)
	return hooks
}

func findHooks(node any, hooks map[int]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for key, value := range v {
			if key == "hook" {
				if id, ok := hookID(value); ok {
					hooks[id] = struct{}{}
					continue
				}
			}
			if key == "parameters" {
				if params, ok := value.(map[string]any); ok {
					if id, ok := hookID(params["hook"]); ok {
						hooks[id] = struct{}{}
					}
				}
			}
			findHooks(value, hooks)
		}
	case []any:
		for _, item := range v {
			findHooks(item, hooks)
		}
	}
}

// hookID интерпретирует значение как целочисленный hook ID.
//
// encoding/json декодирует числа в float64, поэтому целым считается
// float64 без дробной части. int и json.Number принимаются для
// документов, собранных вручную.
func hookID(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if !math.IsInf(n, 0) && !math.IsNaN(n) && n == math.Trunc(n) {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

// Rewriter заменяет hardcoded hook ID в blueprint'ах на свежие.
type Rewriter struct {
	creator HookCreator
	logger  *slog.Logger
}

// NewRewriter создаёт Rewriter.
//
// creator может быть nil, если провизионинг не нужен (createMissing=false
// или seed покрывает все найденные ID).
func NewRewriter(creator HookCreator, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rewriter{creator: creator, logger: logger}
}

// Rewrite заменяет hardcoded hook ID в копии документа.
//
// Алгоритм:
//  1. Документ глубоко копируется — оригинал не изменяется.
//  2. FindHooks собирает все hardcoded ID.
//  3. Для каждого ID, отсутствующего в seed: при createMissing=true
//     через HookCreator создаётся webhook с именем "префикс ID" и новый
//     ID записывается в mapping; при createMissing=false пишется warning,
//     ID остаётся без замены.
//  4. Второй обход подставляет mapping в копию. ID без записи в mapping
//     не трогаются.
//
// Возвращает копию и итоговый mapping: записи seed для найденных ID плюс
// созданные. seed не изменяется. При полном seed API не вызывается вовсе
// и замена становится чистой подстановкой.
//
// Провизионинг идёт по ID в возрастающем порядке, строго последовательно.
// Первая же ошибка создания webhook'а прерывает вызов (*ProvisionError);
// уже созданные webhook'и не откатываются.
func (r *Rewriter) Rewrite(ctx context.Context, doc any, seed map[int]int, createMissing bool, namePrefix string) (any, map[int]int, error) {
	if namePrefix == "" {
		namePrefix = DefaultNamePrefix
	}

	updated := deepCopy(doc)
	found := FindHooks(updated)
	r.logger.Info("found hardcoded hook references", "count", len(found))

	mapping := make(map[int]int, len(found))
	unmapped := make([]int, 0, len(found))
	for id := range found {
		if newID, ok := seed[id]; ok {
			mapping[id] = newID
			continue
		}
		unmapped = append(unmapped, id)
	}
	// Порядок итерации map недетерминирован; сортировка делает
	// последовательность API-вызовов воспроизводимой.
	sort.Ints(unmapped)

	for _, id := range unmapped {
		if !createMissing {
			r.logger.Warn("no mapping for hardcoded hook and hook creation is disabled", "hook_id", id)
			continue
		}
		if r.creator == nil {
			return nil, nil, ErrNoCreator
		}

		name := namePrefix + " " + strconv.Itoa(id)
		newID, err := r.creator.CreateHook(ctx, name)
		if err != nil {
			return nil, nil, &ProvisionError{HookID: id, Err: err}
		}
		mapping[id] = newID
		r.logger.Info("created webhook to replace hardcoded hook",
			"hook_id", id, "new_hook_id", newID, "name", name)
	}

	replaceHooks(updated, mapping)
	r.logger.Info("replaced hook ids in blueprint", "count", len(mapping))

	return updated, mapping, nil
}

// replaceHooks подставляет mapping в документ, изменяя его на месте.
// Формы совпадают с FindHooks; "parameters" покрывается рекурсией.
func replaceHooks(node any, mapping map[int]int) {
	switch v := node.(type) {
	case map[string]any:
		for key, value := range v {
			if key == "hook" {
				if id, ok := hookID(value); ok {
					if newID, ok := mapping[id]; ok {
						v[key] = newID
					}
					continue
				}
			}
			replaceHooks(value, mapping)
		}
	case []any:
		for _, item := range v {
			replaceHooks(item, mapping)
		}
	}
}

// deepCopy строит независимую копию JSON-дерева.
// Скаляры неизменяемы и переносятся как есть.
func deepCopy(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, value := range v {
			out[k] = deepCopy(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

// Parse разбирает blueprint из JSON-текста.
// Невалидный JSON отклоняется до каких-либо сетевых вызовов.
func Parse(text []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return doc, nil
}
