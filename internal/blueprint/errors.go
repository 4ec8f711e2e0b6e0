package blueprint

import (
	"errors"
	"strconv"
)

// Ошибки работы с blueprint-документами.
var (
	// ErrInvalidJSON — текст не является валидным JSON-документом.
	ErrInvalidJSON = errors.New("blueprint is not valid JSON")

	// ErrNoCreator — требуется провизионинг, но HookCreator не задан.
	ErrNoCreator = errors.New("hook creator is not configured")
)

// ProvisionError — ошибка создания webhook'а для конкретного hook ID.
//
// Возникает в середине цикла провизионинга. Webhook'и, созданные для
// предыдущих ID в том же вызове, не откатываются.
type ProvisionError struct {
	HookID int   // исходный hardcoded ID, для которого создавался webhook
	Err    error // ошибка API-клиента
}

// Error реализует интерфейс error.
func (e *ProvisionError) Error() string {
	return "provision hook for id " + strconv.Itoa(e.HookID) + ": " + e.Err.Error()
}

// Unwrap возвращает базовую ошибку.
func (e *ProvisionError) Unwrap() error {
	return e.Err
}
