package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-directory-service/internal/model"
	"user-directory-service/internal/repository"
)

// userStore описывает контракт хранилища, общий для PostgreSQL и memdb.
type userStore interface {
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

func usernames(users []model.User) []string {
	res := make([]string, 0, len(users))
	for _, u := range users {
		res = append(res, u.Username)
	}
	return res
}

func mustSave(t *testing.T, s userStore, u model.User) model.User {
	t.Helper()
	saved, err := s.Save(context.Background(), u)
	require.NoError(t, err)
	return saved
}

// runStoreContract прогоняет одинаковые проверки для любой реализации хранилища.
// newStore должен возвращать пустое хранилище.
func runStoreContract(t *testing.T, newStore func(t *testing.T) userStore) {
	ctx := context.Background()

	t.Run("Save assigns id and round-trips", func(t *testing.T) {
		s := newStore(t)

		saved := mustSave(t, s, model.User{Username: "integrationtest", Email: "integration@test.com", Password: "pw", FirstName: "Integration", Active: true})
		assert.NotZero(t, saved.ID)
		assert.False(t, saved.CreatedAt.IsZero())

		got, err := s.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "integrationtest", got.Username)
		assert.Equal(t, "integration@test.com", got.Email)
		assert.Equal(t, "pw", got.Password)
		assert.True(t, got.Active)
	})

	t.Run("Ids are distinct and stable across updates", func(t *testing.T) {
		s := newStore(t)

		a := mustSave(t, s, model.User{Username: "a", Email: "a@x.com"})
		b := mustSave(t, s, model.User{Username: "b", Email: "b@x.com"})
		assert.NotEqual(t, a.ID, b.ID)

		a.FirstName = "Renamed"
		updated := mustSave(t, s, a)
		assert.Equal(t, a.ID, updated.ID)
		assert.Equal(t, "Renamed", updated.FirstName)
		assert.Equal(t, a.CreatedAt.Unix(), updated.CreatedAt.Unix())
	})

	t.Run("Lookups by username and email", func(t *testing.T) {
		s := newStore(t)
		saved := mustSave(t, s, model.User{Username: "testusername", Email: "findbyemail@test.com"})

		byName, err := s.FindByUsername(ctx, "testusername")
		require.NoError(t, err)
		assert.Equal(t, saved.ID, byName.ID)

		byEmail, err := s.FindByEmail(ctx, "findbyemail@test.com")
		require.NoError(t, err)
		assert.Equal(t, saved.ID, byEmail.ID)

		_, err = s.FindByUsername(ctx, "nonexistent")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
		_, err = s.FindByID(ctx, saved.ID+1000)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("Exists checks", func(t *testing.T) {
		s := newStore(t)
		saved := mustSave(t, s, model.User{Username: "existstest", Email: "emailcheck@test.com"})

		ok, err := s.ExistsByUsername(ctx, "existstest")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.ExistsByUsername(ctx, "nonexistent")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.ExistsByEmail(ctx, "emailcheck@test.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.ExistsByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Unique username and email enforced on insert and update", func(t *testing.T) {
		s := newStore(t)
		mustSave(t, s, model.User{Username: "taken", Email: "taken@x.com"})
		other := mustSave(t, s, model.User{Username: "other", Email: "other@x.com"})

		_, err := s.Save(ctx, model.User{Username: "taken", Email: "fresh@x.com"})
		assert.ErrorIs(t, err, repository.ErrUsernameExists)

		_, err = s.Save(ctx, model.User{Username: "fresh", Email: "taken@x.com"})
		assert.ErrorIs(t, err, repository.ErrEmailExists)

		other.Username = "taken"
		_, err = s.Save(ctx, other)
		assert.ErrorIs(t, err, repository.ErrUsernameExists)

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"taken", "other"}, usernames(all))
	})

	t.Run("Saving a user under its own username is not a conflict", func(t *testing.T) {
		s := newStore(t)
		u := mustSave(t, s, model.User{Username: "self", Email: "self@x.com"})

		u.Active = true
		_, err := s.Save(ctx, u)
		assert.NoError(t, err)
	})

	t.Run("Update of missing id", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Save(ctx, model.User{ID: 404, Username: "ghost", Email: "ghost@x.com"})
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("Active filter and count", func(t *testing.T) {
		s := newStore(t)
		mustSave(t, s, model.User{Username: "activeuser", Email: "active@x.com", Active: true})
		mustSave(t, s, model.User{Username: "activeuser2", Email: "active2@x.com", Active: true})
		mustSave(t, s, model.User{Username: "inactiveuser", Email: "inactive@x.com", Active: false})

		active, err := s.FindByActive(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"activeuser", "activeuser2"}, usernames(active))

		inactive, err := s.FindByActive(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"inactiveuser"}, usernames(inactive))

		n, err := s.CountByActive(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = s.CountByActive(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("First name search", func(t *testing.T) {
		s := newStore(t)
		mustSave(t, s, model.User{Username: "user1", Email: "u1@x.com", FirstName: "John"})
		mustSave(t, s, model.User{Username: "user2", Email: "u2@x.com", FirstName: "Johnny"})
		mustSave(t, s, model.User{Username: "user3", Email: "u3@x.com", FirstName: "Jane"})
		mustSave(t, s, model.User{Username: "user4", Email: "u4@x.com", FirstName: "100%_real"})
		mustSave(t, s, model.User{Username: "user5", Email: "u5@x.com"})

		found, err := s.FindByFirstNameContaining(ctx, "JOHN")
		require.NoError(t, err)
		assert.Equal(t, []string{"user1", "user2"}, usernames(found))

		found, err = s.FindByFirstNameContaining(ctx, "%_")
		require.NoError(t, err)
		assert.Equal(t, []string{"user4"}, usernames(found))

		found, err = s.FindByFirstNameContaining(ctx, "")
		require.NoError(t, err)
		assert.Len(t, found, 5)
	})

	t.Run("Username or email lookup", func(t *testing.T) {
		s := newStore(t)
		mustSave(t, s, model.User{Username: "one", Email: "one@x.com"})
		mustSave(t, s, model.User{Username: "two", Email: "two@x.com"})
		mustSave(t, s, model.User{Username: "three", Email: "three@x.com"})

		found, err := s.FindByUsernameOrEmail(ctx, "one", "three@x.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "three"}, usernames(found))
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		u := mustSave(t, s, model.User{Username: "gone", Email: "gone@x.com"})

		require.NoError(t, s.DeleteByID(ctx, u.ID))

		ok, err := s.ExistsByID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = s.FindByID(ctx, u.ID)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)

		assert.ErrorIs(t, s.DeleteByID(ctx, u.ID), repository.ErrUserNotFound)

		// освободившиеся username и email снова доступны
		_, err = s.Save(ctx, model.User{Username: "gone", Email: "gone@x.com"})
		assert.NoError(t, err)
	})
}
