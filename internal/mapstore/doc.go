// Package mapstore хранит hook mapping'и между запусками CLI.
//
// Каждый вызов deploy с create-missing создаёт свежие webhook'и, поэтому
// слепой повторный запуск по тому же blueprint'у плодит осиротевшие
// ресурсы в Make.com. Сохранённый mapping, переданный как seed при
// следующем запуске, делает операцию идемпотентной.
//
// Хранилище — один SQLite-файл (modernc.org/sqlite, без cgo). Mapping'и
// разделяются по scope: произвольному имени, которое выбирает вызывающий
// (обычно имя blueprint-файла или сценария).
package mapstore
