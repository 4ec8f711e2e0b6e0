package blueprint

import "encoding/json"

// Module — один модуль в потоке blueprint'а.
// Структура свободная, как её ожидает Make.com API.
type Module = map[string]any

// Simple собирает минимальный blueprint с переданными модулями.
// Если modules пуст, подставляется одиночный HTTP-модуль — такой blueprint
// валиден и пригоден для smoke-проверки API.
func Simple(name, description string, modules []Module) map[string]any {
	if len(modules) == 0 {
		modules = []Module{
			{
				"id":       1,
				"module":   "http:ActionSendData",
				"version":  3,
				"metadata": map[string]any{"designer": map[string]any{"x": 0, "y": 0}},
				"mapper": map[string]any{
					"url":     "https://httpbin.org/post",
					"method":  "post",
					"headers": []any{},
					"qs":      []any{},
					"body":    `{"message": "Hello from Make.com!"}`,
				},
			},
		}
	}

	flow := make([]any, len(modules))
	for i, m := range modules {
		flow[i] = map[string]any(m)
	}

	return map[string]any{
		"name":        name,
		"description": description,
		"flow":        flow,
		"metadata": map[string]any{
			"version": 1,
			"scenario": map[string]any{
				"roundtrips":            1,
				"maxErrors":             3,
				"autoCommit":            true,
				"autoCommitTriggerLast": true,
				"sequential":            false,
				"confidential":          false,
				"dataloss":              false,
				"dlq":                   false,
				"freshVariables":        false,
			},
			"designer": map[string]any{"orphans": []any{}},
		},
	}
}

// WithWebhook собирает blueprint с webhook-триггером и HTTP-модулем,
// пересылающим тело запроса.
func WithWebhook(name, webhookName, description string) map[string]any {
	if webhookName == "" {
		webhookName = "Webhook"
	}

	modules := []Module{
		{
			"id":       1,
			"module":   "webhook:CustomWebHook",
			"version":  1,
			"metadata": map[string]any{"designer": map[string]any{"x": 0, "y": 0}},
			"webhook":  map[string]any{"name": webhookName, "type": "incoming"},
		},
		{
			"id":       2,
			"module":   "http:ActionSendData",
			"version":  3,
			"metadata": map[string]any{"designer": map[string]any{"x": 300, "y": 0}},
			"mapper": map[string]any{
				"url":     "https://httpbin.org/post",
				"method":  "post",
				"headers": []any{},
				"qs":      []any{},
				"body":    `{"webhook_data": "{{1.body}}"}`,
			},
		},
	}

	return Simple(name, description, modules)
}

// FormatForAPI сериализует blueprint в компактный JSON,
// как его ожидает поле blueprint при создании сценария.
func FormatForAPI(doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Name извлекает имя сценария из blueprint'а.
// Если имени нет, возвращается fallback "Untitled Scenario".
func Name(doc any) string {
	if m, ok := doc.(map[string]any); ok {
		if name, ok := m["name"].(string); ok && name != "" {
			return name
		}
	}
	return "Untitled Scenario"
}
