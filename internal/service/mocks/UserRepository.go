package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "user-directory-service/internal/model"
)

// UserRepository is a mock type for the UserRepository type
type UserRepository struct {
	mock.Mock
}

// Save provides a mock function with given fields: ctx, u
func (_m *UserRepository) Save(ctx context.Context, u model.User) (model.User, error) {
	ret := _m.Called(ctx, u)

	var r0 model.User
	if rf, ok := ret.Get(0).(func(context.Context, model.User) model.User); ok {
		r0 = rf(ctx, u)
	} else {
		r0 = ret.Get(0).(model.User)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, model.User) error); ok {
		r1 = rf(ctx, u)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

// FindByUsername provides a mock function with given fields: ctx, username
func (_m *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	ret := _m.Called(ctx, username)
	return ret.Get(0).(model.User), ret.Error(1)
}

// FindByEmail provides a mock function with given fields: ctx, email
func (_m *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	ret := _m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

// FindAll provides a mock function with given fields: ctx
func (_m *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	ret := _m.Called(ctx)
	return usersOrNil(ret.Get(0)), ret.Error(1)
}

// FindByActive provides a mock function with given fields: ctx, active
func (_m *UserRepository) FindByActive(ctx context.Context, active bool) ([]model.User, error) {
	ret := _m.Called(ctx, active)
	return usersOrNil(ret.Get(0)), ret.Error(1)
}

// FindByFirstNameContaining provides a mock function with given fields: ctx, fragment
func (_m *UserRepository) FindByFirstNameContaining(ctx context.Context, fragment string) ([]model.User, error) {
	ret := _m.Called(ctx, fragment)
	return usersOrNil(ret.Get(0)), ret.Error(1)
}

// FindByUsernameOrEmail provides a mock function with given fields: ctx, username, email
func (_m *UserRepository) FindByUsernameOrEmail(ctx context.Context, username string, email string) ([]model.User, error) {
	ret := _m.Called(ctx, username, email)
	return usersOrNil(ret.Get(0)), ret.Error(1)
}

// ExistsByUsername provides a mock function with given fields: ctx, username
func (_m *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ret := _m.Called(ctx, username)
	return ret.Bool(0), ret.Error(1)
}

// ExistsByEmail provides a mock function with given fields: ctx, email
func (_m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Error(1)
}

// ExistsByID provides a mock function with given fields: ctx, id
func (_m *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ret := _m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

// CountByActive provides a mock function with given fields: ctx, active
func (_m *UserRepository) CountByActive(ctx context.Context, active bool) (int64, error) {
	ret := _m.Called(ctx, active)
	return ret.Get(0).(int64), ret.Error(1)
}

// DeleteByID provides a mock function with given fields: ctx, id
func (_m *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func usersOrNil(v interface{}) []model.User {
	if v == nil {
		return nil
	}
	return v.([]model.User)
}

// NewUserRepository creates a new instance of UserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
