package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Коды ошибок, которые видит клиент.
const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeUsernameExists = "USERNAME_EXISTS"
	CodeEmailExists    = "EMAIL_EXISTS"
	CodeInternal       = "INTERNAL"
)

// AppError описывает прикладную ошибку сервиса:
// код для клиента, человекочитаемое сообщение, HTTP-статус и вложенная ошибка.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

// Error реализует интерфейс error для AppError.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для поддержки errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrBadRequest конструирует AppError для ошибок валидации или некорректных запросов клиента.
func ErrBadRequest(msg string) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: msg,
		Status:  http.StatusBadRequest,
	}
}

// ErrNotFound конструирует AppError для ситуации, когда цель изменения не найдена.
func ErrNotFound(msg string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: msg,
		Status:  http.StatusNotFound,
	}
}

// ErrConflict конструирует AppError для нарушения уникальности (USERNAME_EXISTS, EMAIL_EXISTS).
func ErrConflict(code, msg string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Status:  http.StatusConflict,
		Err:     err,
	}
}

// ErrInternal оборачивает отказ хранилища.
func ErrInternal(msg string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: msg,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// IsNotFound помогает определить, соответствует ли ошибка HTTP-статусу 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict сообщает, что ошибка вызвана нарушением уникальности.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var app *AppError
	if errors.As(err, &app) {
		return app.Status == status
	}
	return false
}
