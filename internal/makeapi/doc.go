// Package makeapi реализует HTTP-клиент для Make.com API v2.
//
// # Обзор
//
// Клиент инкапсулирует аутентификацию, сборку запросов и разбор ответов.
// Make.com использует схему авторизации Token (не Bearer):
//
//	Authorization: Token <api_token>
//
// Каждый ответ завёрнут в конверт по имени ресурса: scenario/scenarios,
// hook/hooks, authUser, organizations, teams и т.д. Методы клиента
// разворачивают конверт и возвращают типизированные структуры.
//
// # Ключевые компоненты
//
// ## Client
//
//	client := makeapi.NewClient(makeapi.Options{
//		BaseURL: "https://us2.make.com/api/v2",
//		Token:   token,
//		TeamID:  123,
//	})
//	scenarios, err := client.ListScenarios(ctx, false)
//
// Все вызовы блокирующие и строго последовательные, с таймаутом 30s на
// запрос. Ретраев нет: неуспех одного вызова сразу возвращается вызывающему.
//
// ## APIError
//
// Неуспешный HTTP-статус или транспортная ошибка поднимаются как
// *APIError со статус-кодом и сырым телом ответа. Каждый запрос несёт
// заголовок X-Request-Id (uuid) — он же попадает в логи и в ошибку,
// что позволяет сопоставить ошибку с конкретным вызовом.
package makeapi
