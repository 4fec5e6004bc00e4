// Package model содержит доменные структуры каталога пользователей.
package model

import "time"

// User описывает пользователя каталога.
// ID назначается хранилищем при первом сохранении и после этого не меняется;
// нулевое значение означает, что пользователь ещё не сохранён.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsNew сообщает, что у пользователя ещё нет назначенного идентификатора.
func (u User) IsNew() bool {
	return u.ID == 0
}

// UserInput содержит данные пользователя, приходящие от клиента при создании и обновлении.
// Active == nil означает, что флаг не передан.
type UserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Active    *bool
}
