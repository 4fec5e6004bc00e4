package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"user-directory-service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, username, email, password, first_name, last_name, active, created_at, updated_at`

// Имена ограничений уникальности из schema.sql.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// likeEscaper экранирует спецсимволы LIKE, чтобы фрагмент искался буквально.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// UserRepo реализует репозиторий пользователей на базе PostgreSQL.
type UserRepo struct {
	db *Postgres
}

// NewUserRepo создаёт новый экземпляр UserRepo c переданным подключением к PostgreSQL.
func NewUserRepo(db *Postgres) *UserRepo {
	return &UserRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Save вставляет пользователя, если у него нет ID, иначе перезаписывает запись с этим ID.
// При нарушении уникальности возвращает ErrUsernameExists или ErrEmailExists,
// при отсутствии записи для обновления ErrUserNotFound.
func (r *UserRepo) Save(ctx context.Context, u model.User) (model.User, error) {
	q := r.db.GetQueryExecutor(ctx)

	var row pgx.Row
	if u.IsNew() {
		row = q.QueryRow(ctx, `
INSERT INTO users (username, email, password, first_name, last_name, active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+userColumns,
			u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.Active)
	} else {
		row = q.QueryRow(ctx, `
UPDATE users
SET username   = $2,
    email      = $3,
    password   = $4,
    first_name = $5,
    last_name  = $6,
    active     = $7,
    updated_at = now()
WHERE id = $1
RETURNING `+userColumns,
			u.ID, u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.Active)
	}

	saved, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case usernameConstraint:
				return model.User{}, ErrUsernameExists
			case emailConstraint:
				return model.User{}, ErrEmailExists
			}
		}
		return model.User{}, fmt.Errorf("save user: %w", err)
	}
	return saved, nil
}

// FindByID возвращает пользователя по id или ErrUserNotFound.
// Внутри транзакции строка блокируется до её завершения.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if inTransaction(ctx) {
		query += ` FOR UPDATE`
	}
	return r.findOne(ctx, query, id)
}

// FindByUsername возвращает пользователя по username или ErrUserNotFound.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByEmail возвращает пользователя по email или ErrUserNotFound.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	return r.findMany(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (r *UserRepo) FindByActive(ctx context.Context, active bool) ([]model.User, error) {
	return r.findMany(ctx, `SELECT `+userColumns+` FROM users WHERE active = $1 ORDER BY id`, active)
}

// FindByFirstNameContaining ищет пользователей, чьё имя содержит fragment без учёта регистра.
// Пустой fragment подходит всем пользователям.
func (r *UserRepo) FindByFirstNameContaining(ctx context.Context, fragment string) ([]model.User, error) {
	return r.findMany(ctx, `
SELECT `+userColumns+`
FROM users
WHERE first_name ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY id
`, likeEscaper.Replace(fragment))
}

// FindByUsernameOrEmail возвращает пользователей, у которых совпадает username или email.
func (r *UserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) ([]model.User, error) {
	return r.findMany(ctx, `
SELECT `+userColumns+`
FROM users
WHERE username = $1 OR email = $2
ORDER BY id
`, username, email)
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
}

// CountByActive возвращает количество пользователей с указанным флагом активности.
func (r *UserRepo) CountByActive(ctx context.Context, active bool) (int64, error) {
	q := r.db.GetQueryExecutor(ctx)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE active = $1`, active).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// DeleteByID удаляет пользователя. Если записи нет, возвращает ErrUserNotFound.
func (r *UserRepo) DeleteByID(ctx context.Context, id int64) error {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, query string, args ...any) (model.User, error) {
	q := r.db.GetQueryExecutor(ctx)

	u, err := scanUser(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) findMany(ctx context.Context, query string, args ...any) ([]model.User, error) {
	q := r.db.GetQueryExecutor(ctx)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return users, nil
}

func (r *UserRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	q := r.db.GetQueryExecutor(ctx)

	var ok bool
	if err := q.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return ok, nil
}
