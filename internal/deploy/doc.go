// Package deploy разворачивает blueprint'ы в сценарии Make.com.
//
// Deployer связывает чистую перезапись hook'ов (internal/blueprint)
// с API-клиентом (internal/makeapi): парсит документ, провизионирует
// свежие webhook'и вместо захардкоженных, создаёт сценарий и
// обогащает результат данными созданных webhook'ов (имя, URL) —
// чтобы вызывающий сразу получил рабочие адреса.
//
// Все шаги строго последовательные. Ошибка провизионинга прерывает
// весь deploy; ошибка получения деталей webhook'а после создания
// сценария — нет: сценарий уже существует, недоступная запись просто
// пропускается в итоговом списке.
package deploy
