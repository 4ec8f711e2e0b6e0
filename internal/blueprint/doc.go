// Package blueprint работает с blueprint-документами Make.com.
//
// Blueprint — это JSON-документ произвольной вложенности, описывающий
// модули сценария, их маршрутизацию и параметры. Пакет не навязывает
// схему: документ представлен как дерево map[string]any / []any / скаляров,
// полученное из encoding/json.
//
// Включает:
//   - hooks.go   — поиск и замена hardcoded hook ID (FindHooks, Rewriter)
//   - builder.go — шаблоны blueprint'ов (Simple, WithWebhook) и
//     сериализация для API (FormatForAPI)
//
// Поиск и замена hook'ов — ядро пакета. Blueprint, экспортированный из
// Make.com, содержит захардкоженные ID webhook'ов, которые принадлежат
// исходной команде и не работают после импорта. Rewriter находит такие
// ссылки, создаёт свежие webhook'и через HookCreator и подставляет новые
// ID в копию документа, не трогая оригинал.
package blueprint
