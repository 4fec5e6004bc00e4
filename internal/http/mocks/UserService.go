package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "user-directory-service/internal/model"
)

// UserService is a mock type for the UserService type
type UserService struct {
	mock.Mock
}

// CreateUser provides a mock function with given fields: ctx, in
func (_m *UserService) CreateUser(ctx context.Context, in model.UserInput) (model.User, error) {
	ret := _m.Called(ctx, in)
	return ret.Get(0).(model.User), ret.Error(1)
}

// GetUserByID provides a mock function with given fields: ctx, id
func (_m *UserService) GetUserByID(ctx context.Context, id int64) (model.User, bool, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Bool(1), ret.Error(2)
}

// GetUserByUsername provides a mock function with given fields: ctx, username
func (_m *UserService) GetUserByUsername(ctx context.Context, username string) (model.User, bool, error) {
	ret := _m.Called(ctx, username)
	return ret.Get(0).(model.User), ret.Bool(1), ret.Error(2)
}

// GetUserByEmail provides a mock function with given fields: ctx, email
func (_m *UserService) GetUserByEmail(ctx context.Context, email string) (model.User, bool, error) {
	ret := _m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Bool(1), ret.Error(2)
}

// GetAllUsers provides a mock function with given fields: ctx
func (_m *UserService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	ret := _m.Called(ctx)
	var r0 []model.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.User)
	}
	return r0, ret.Error(1)
}

// GetActiveUsers provides a mock function with given fields: ctx
func (_m *UserService) GetActiveUsers(ctx context.Context) ([]model.User, error) {
	ret := _m.Called(ctx)
	var r0 []model.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.User)
	}
	return r0, ret.Error(1)
}

// SearchUsersByFirstName provides a mock function with given fields: ctx, fragment
func (_m *UserService) SearchUsersByFirstName(ctx context.Context, fragment string) ([]model.User, error) {
	ret := _m.Called(ctx, fragment)
	var r0 []model.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.User)
	}
	return r0, ret.Error(1)
}

// FindUsersByUsernameOrEmail provides a mock function with given fields: ctx, username, email
func (_m *UserService) FindUsersByUsernameOrEmail(ctx context.Context, username string, email string) ([]model.User, error) {
	ret := _m.Called(ctx, username, email)
	var r0 []model.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.User)
	}
	return r0, ret.Error(1)
}

// UpdateUser provides a mock function with given fields: ctx, id, in
func (_m *UserService) UpdateUser(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	ret := _m.Called(ctx, id, in)
	return ret.Get(0).(model.User), ret.Error(1)
}

// DeleteUser provides a mock function with given fields: ctx, id
func (_m *UserService) DeleteUser(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// ActivateUser provides a mock function with given fields: ctx, id
func (_m *UserService) ActivateUser(ctx context.Context, id int64) (model.User, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

// DeactivateUser provides a mock function with given fields: ctx, id
func (_m *UserService) DeactivateUser(ctx context.Context, id int64) (model.User, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

// GetUserCountByStatus provides a mock function with given fields: ctx, active
func (_m *UserService) GetUserCountByStatus(ctx context.Context, active bool) (int64, error) {
	ret := _m.Called(ctx, active)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewUserService creates a new instance of UserService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserService {
	m := &UserService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
