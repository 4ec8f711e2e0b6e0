// Package telemetry обеспечивает наблюдаемость инструмента.
//
// Включает:
//   - logging.go — structured logging через slog
//
// Формат и уровень логирования управляются переменными окружения
// LOG_FORMAT и LOG_LEVEL. Логи пишутся в stderr, чтобы не мешать
// данным на stdout (таблицы, JSON для pipe в jq).
package telemetry
