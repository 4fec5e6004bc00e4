// Package http реализует HTTP-обработчики и DTO поверх сервиса каталога пользователей.
package http

import "user-directory-service/internal/model"

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// userRequest: тело POST /api/users и PUT /api/users/{id}.
// Отсутствующий active при создании означает true, при обновлении сохраняется текущее значение.
type userRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Active    *bool  `json:"active"`
}

func (r userRequest) toInput() model.UserInput {
	return model.UserInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Active:    r.Active,
	}
}

type userResponse struct {
	User model.User `json:"user"`
}

type usersResponse struct {
	Users []model.User `json:"users"`
}

type countResponse struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
