package repository

import "errors"

var (
	// ErrUserNotFound возвращается, если пользователь не найден в хранилище.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists возвращается при нарушении уникальности username.
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists возвращается при нарушении уникальности email.
	ErrEmailExists = errors.New("email already exists")
)
