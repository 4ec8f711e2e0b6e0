// Package cli реализует инструмент командной строки makeblueprint.
//
// # Обзор
//
// CLI — клиентская утилита для работы с Make.com API: управление
// сценариями и webhook'ами, развёртывание blueprint'ов с автоматической
// заменой захардкоженных hook ID, генерация шаблонов blueprint'ов.
//
// # Ключевые компоненты
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON с отступами — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: makeblueprint scenario list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - scenario:  list, blueprint, create, clone, update, activate,
//     deactivate, run, delete
//   - hook:      list, create, show, rename, delete
//   - deploy:    развёртывание blueprint-файла со свежими webhook'ами
//   - account:   me, orgs, teams — поиск своих team/organization ID
//   - blueprint: simple, webhook, hooks — шаблоны и анализ (без сети)
//
// Каждая группа создаётся через фабричную функцию (NewScenarioCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// клиента и Output после парсинга PersistentFlags. Клиент создаётся
// только командами, которым нужна сеть: blueprint-шаблоны работают
// без конфигурации вовсе.
package cli
