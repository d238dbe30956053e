package apperrors

import "errors"

var (
	ErrEventNotFound          = errors.New("event not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidID              = errors.New("invalid id")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid token")
	ErrQueueFull              = errors.New("queue is full")
	ErrHubClosed              = errors.New("hub is closed")
)

// ValidationError 表單驗證失敗，Message 直接顯示給使用者
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation 判斷 err 鏈中是否含有 ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
