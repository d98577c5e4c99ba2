package errs

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidSizes    = errors.New("sizes must be a JSON array of {size, quantity}")
	ErrParentNotFound  = errors.New("parent category does not exist")
	ErrCategoryCycle   = errors.New("a category cannot be moved under itself or its descendants")
	ErrUnknownCategory = errors.New("one or more categories do not exist")
	ErrConflict        = errors.New("conflicting record found")
	ErrStorage         = errors.New("image storage failure")
)

var errorMap = map[error]int{
	ErrNotFound:        http.StatusNotFound,
	ErrValidation:      http.StatusBadRequest,
	ErrInvalidSizes:    http.StatusBadRequest,
	ErrParentNotFound:  http.StatusUnprocessableEntity,
	ErrCategoryCycle:   http.StatusUnprocessableEntity,
	ErrUnknownCategory: http.StatusUnprocessableEntity,
	ErrConflict:        http.StatusConflict,
	ErrStorage:         http.StatusInternalServerError,
}

// StatusCode 把错误映射为 HTTP 状态码，支持 %w 包装过的错误
// 未登记的错误一律 500
func StatusCode(err error) int {
	for target, status := range errorMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// FromDB 把 gorm 的错误翻译成业务错误
// gorm.Config.TranslateError 打开后重复键才会是 ErrDuplicatedKey
func FromDB(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
