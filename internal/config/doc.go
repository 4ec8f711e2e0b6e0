// Package config загружает настройки подключения к Make.com API.
//
// Источники, в порядке возрастания приоритета:
//   - TOML-файл (--config или ~/.config/makeblueprint/config.toml);
//   - переменные окружения MAKE_API_TOKEN, MAKE_TEAM_ID,
//     MAKE_ORGANIZATION_ID, MAKE_ZONE, MAKE_API_BASE_URL.
//
// Валидные настройки содержат токен и ровно один из team/organization ID.
package config
