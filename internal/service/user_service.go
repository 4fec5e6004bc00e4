// Package service содержит бизнес-логику каталога пользователей.
package service

import (
	"context"
	"errors"

	"user-directory-service/internal/model"
	"user-directory-service/internal/repository"
)

// TransactionManager описывает интерфейс для управления транзакциями (чтобы можно было мокать).
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository описывает контракт хранилища пользователей для бизнес-слоя.
// Методы Find* на промах возвращают repository.ErrUserNotFound,
// Save на нарушение уникальности возвращает repository.ErrUsernameExists или repository.ErrEmailExists.
type UserRepository interface {
	Save(ctx context.Context, u model.User) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByActive(ctx context.Context, active bool) ([]model.User, error)
	FindByFirstNameContaining(ctx context.Context, fragment string) ([]model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) ([]model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	CountByActive(ctx context.Context, active bool) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}

// UserService является единственным местом, где проверяются инварианты пользователей.
// Все изменения проходят через него; между вызовами он состояния не хранит.
type UserService struct {
	repo      UserRepository
	txManager TransactionManager
}

// NewUserService создаёт новый сервис для операций над пользователями.
func NewUserService(repo UserRepository, txManager TransactionManager) *UserService {
	return &UserService{
		repo:      repo,
		txManager: txManager,
	}
}

// CreateUser создаёт пользователя. Сначала проверяется занятость username, затем email;
// при конфликте возвращается USERNAME_EXISTS или EMAIL_EXISTS и ничего не сохраняется.
// Если Active не передан, пользователь создаётся активным.
func (s *UserService) CreateUser(ctx context.Context, in model.UserInput) (model.User, error) {
	if in.Username == "" || in.Email == "" {
		return model.User{}, ErrBadRequest("username and email are required")
	}

	candidate := model.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Active:    true,
	}
	if in.Active != nil {
		candidate.Active = *in.Active
	}

	var created model.User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByUsername(ctx, candidate.Username)
		if err != nil {
			return ErrInternal("failed to check username", err)
		}
		if exists {
			return ErrConflict(CodeUsernameExists, "username already exists", nil)
		}

		exists, err = s.repo.ExistsByEmail(ctx, candidate.Email)
		if err != nil {
			return ErrInternal("failed to check email", err)
		}
		if exists {
			return ErrConflict(CodeEmailExists, "email already exists", nil)
		}

		created, err = s.repo.Save(ctx, candidate)
		return err
	})
	if err != nil {
		return model.User{}, mapStoreError(err, "failed to create user")
	}
	return created, nil
}

// GetUserByID возвращает пользователя по id. Промах не является ошибкой: found == false.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (model.User, bool, error) {
	return lookup(s.repo.FindByID(ctx, id))
}

// GetUserByUsername возвращает пользователя по username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (model.User, bool, error) {
	return lookup(s.repo.FindByUsername(ctx, username))
}

// GetUserByEmail возвращает пользователя по email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (model.User, bool, error) {
	return lookup(s.repo.FindByEmail(ctx, email))
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal("failed to list users", err)
	}
	return users, nil
}

func (s *UserService) GetActiveUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindByActive(ctx, true)
	if err != nil {
		return nil, ErrInternal("failed to list active users", err)
	}
	return users, nil
}

// SearchUsersByFirstName ищет пользователей по подстроке имени без учёта регистра.
// Пустой фрагмент возвращает всех пользователей.
func (s *UserService) SearchUsersByFirstName(ctx context.Context, fragment string) ([]model.User, error) {
	users, err := s.repo.FindByFirstNameContaining(ctx, fragment)
	if err != nil {
		return nil, ErrInternal("failed to search users", err)
	}
	return users, nil
}

// FindUsersByUsernameOrEmail возвращает пользователей, совпавших по username или email.
func (s *UserService) FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]model.User, error) {
	if username == "" && email == "" {
		return nil, ErrBadRequest("username or email is required")
	}
	users, err := s.repo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, ErrInternal("failed to lookup users", err)
	}
	return users, nil
}

// UpdateUser перезаписывает username, email, имя, фамилию и флаг активности существующего пользователя.
// ID и пароль не меняются. Уникальность заранее не проверяется: повтор отклонит хранилище при сохранении.
func (s *UserService) UpdateUser(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	if in.Username == "" || in.Email == "" {
		return model.User{}, ErrBadRequest("username and email are required")
	}

	var updated model.User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		user, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		user.Username = in.Username
		user.Email = in.Email
		user.FirstName = in.FirstName
		user.LastName = in.LastName
		if in.Active != nil {
			user.Active = *in.Active
		}

		updated, err = s.repo.Save(ctx, user)
		return err
	})
	if err != nil {
		return model.User{}, mapStoreError(err, "failed to update user")
	}
	return updated, nil
}

// DeleteUser безвозвратно удаляет пользователя. Для отсутствующего пользователя возвращается NOT_FOUND.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByID(ctx, id)
		if err != nil {
			return ErrInternal("failed to check user", err)
		}
		if !exists {
			return repository.ErrUserNotFound
		}
		return s.repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return mapStoreError(err, "failed to delete user")
	}
	return nil
}

// ActivateUser делает пользователя активным и возвращает обновлённую запись.
func (s *UserService) ActivateUser(ctx context.Context, id int64) (model.User, error) {
	return s.setActive(ctx, id, true)
}

// DeactivateUser делает пользователя неактивным и возвращает обновлённую запись.
func (s *UserService) DeactivateUser(ctx context.Context, id int64) (model.User, error) {
	return s.setActive(ctx, id, false)
}

// GetUserCountByStatus возвращает количество пользователей с указанным флагом активности.
func (s *UserService) GetUserCountByStatus(ctx context.Context, active bool) (int64, error) {
	n, err := s.repo.CountByActive(ctx, active)
	if err != nil {
		return 0, ErrInternal("failed to count users", err)
	}
	return n, nil
}

func (s *UserService) setActive(ctx context.Context, id int64, active bool) (model.User, error) {
	var updated model.User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		user, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		user.Active = active
		updated, err = s.repo.Save(ctx, user)
		return err
	})
	if err != nil {
		return model.User{}, mapStoreError(err, "failed to update user status")
	}
	return updated, nil
}

func lookup(u model.User, err error) (model.User, bool, error) {
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, false, nil
		}
		return model.User{}, false, ErrInternal("failed to get user", err)
	}
	return u, true, nil
}

// mapStoreError переводит ошибки хранилища в AppError; уже готовые AppError не трогает.
func mapStoreError(err error, msg string) error {
	var app *AppError
	switch {
	case errors.As(err, &app):
		return app
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrNotFound("user not found")
	case errors.Is(err, repository.ErrUsernameExists):
		return ErrConflict(CodeUsernameExists, "username already exists", err)
	case errors.Is(err, repository.ErrEmailExists):
		return ErrConflict(CodeEmailExists, "email already exists", err)
	default:
		return ErrInternal(msg, err)
	}
}
