package post

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// خطاهای ثابت عملیات پست
var (
	// ErrNotFound پست (یا صفحه) وجود ندارد
	ErrNotFound = errors.New("post not found")

	// ErrUnauthenticated تغییر بدون کاربر واردشده
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden کاربر فعلی نویسنده‌ی پست نیست
	ErrForbidden = errors.New("only the author can modify this post")
)

// ValidationError برای هر فیلد ردشده یک پیام
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation error (" + strings.Join(parts, "; ") + ")"
}

// NewValidationError خطای اعتبارسنجی برای یک فیلد
func NewValidationError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// IsValidationError بررسی خطای اعتبارسنجی (مستقیم یا wrap شده)
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
