package http

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"user-directory-service/internal/service"
)

var reEmail = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	usernameMinLen = 3
	usernameMaxLen = 50
	nameMaxLen     = 100
)

// ValidateUserRequest проверяет тело создания и обновления пользователя.
func ValidateUserRequest(req userRequest) error {
	if req.Username == "" {
		return service.ErrBadRequest("username is required")
	}
	if n := utf8.RuneCountInString(req.Username); n < usernameMinLen || n > usernameMaxLen {
		return service.ErrBadRequest(fmt.Sprintf("username must be between %d and %d characters", usernameMinLen, usernameMaxLen))
	}

	if req.Email == "" {
		return service.ErrBadRequest("email is required")
	}
	if !reEmail.MatchString(req.Email) {
		return service.ErrBadRequest("email must be a valid address, e.g. user@example.com")
	}

	if utf8.RuneCountInString(req.FirstName) > nameMaxLen {
		return service.ErrBadRequest(fmt.Sprintf("first_name must be at most %d characters", nameMaxLen))
	}
	if utf8.RuneCountInString(req.LastName) > nameMaxLen {
		return service.ErrBadRequest(fmt.Sprintf("last_name must be at most %d characters", nameMaxLen))
	}
	return nil
}

// ParseUserID разбирает {id} из пути: только положительные целые.
func ParseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrBadRequest("id must be a positive integer")
	}
	return id, nil
}

// ParseActiveQuery разбирает обязательный query-параметр active для /count.
func ParseActiveQuery(raw string) (bool, error) {
	if raw == "" {
		return false, service.ErrBadRequest("active is required")
	}
	active, err := strconv.ParseBool(raw)
	if err != nil {
		return false, service.ErrBadRequest("active must be true or false")
	}
	return active, nil
}
