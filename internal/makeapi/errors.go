package makeapi

import (
	"errors"
	"fmt"
)

// Ошибки клиента.
var (
	// ErrMissingToken — клиент создан без API-токена.
	ErrMissingToken = errors.New("api token is required")
)

// APIError — ошибка запроса к Make.com API.
//
// StatusCode равен нулю при транспортной ошибке (запрос не дошёл до
// сервера или ответ не получен). Body содержит сырое тело ответа,
// если оно было.
type APIError struct {
	StatusCode int
	Body       []byte
	RequestID  string
	Err        error // транспортная ошибка, если была
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api request failed (request %s): %v", e.RequestID, e.Err)
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("api request failed: HTTP %d (request %s): %s", e.StatusCode, e.RequestID, e.Body)
	}
	return fmt.Sprintf("api request failed: HTTP %d (request %s)", e.StatusCode, e.RequestID)
}

// Unwrap возвращает транспортную ошибку.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound сообщает, был ли ответ 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}
