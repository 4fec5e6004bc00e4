package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"user-directory-service/internal/model"

	"github.com/hashicorp/go-memdb"
)

const (
	usersTable = "users"

	indexID       = "id"
	indexUsername = "username"
	indexEmail    = "email"
	indexActive   = "active"
)

func usersSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			usersTable: {
				Name: usersTable,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					indexUsername: {
						Name:    indexUsername,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Username"},
					},
					indexEmail: {
						Name:    indexEmail,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Email"},
					},
					indexActive: {
						Name:    indexActive,
						Indexer: &memdb.BoolFieldIndex{Field: "Active"},
					},
				},
			},
		},
	}
}

type memTxKey struct{}

// MemoryUserRepo реализует репозиторий пользователей в памяти процесса на базе go-memdb.
// Уникальность username и email проверяется внутри пишущей транзакции memdb,
// а RunInTransaction сериализует составные изменения через единственный writer-lock.
// Составные изменения не атомарны: см. RunInTransaction.
type MemoryUserRepo struct {
	db      *memdb.MemDB
	nextID  atomic.Int64
	writeMu sync.Mutex
	now     func() time.Time
}

// NewMemoryUserRepo создаёт пустое хранилище пользователей.
func NewMemoryUserRepo() (*MemoryUserRepo, error) {
	db, err := memdb.NewMemDB(usersSchema())
	if err != nil {
		return nil, fmt.Errorf("init memdb: %w", err)
	}
	return &MemoryUserRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// RunInTransaction выполняет fn, удерживая writer-lock хранилища.
// Вложенные вызовы для того же хранилища выполняются в уже захваченной блокировке;
// контекст чужого MemoryUserRepo блокировку не заменяет.
// Отката нет: Save и DeleteByID внутри fn применяются сразу и остаются в силе,
// даже если fn затем вернёт ошибку. Сервис делает не больше одной записи на вызов.
func (r *MemoryUserRepo) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, ok := ctx.Value(memTxKey{}).(*MemoryUserRepo); ok && owner == r {
		return fn(ctx)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	return fn(context.WithValue(ctx, memTxKey{}, r))
}

// Save вставляет пользователя, если у него нет ID, иначе перезаписывает запись с этим ID.
func (r *MemoryUserRepo) Save(_ context.Context, u model.User) (model.User, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()

	now := r.now()

	if u.IsNew() {
		u.CreatedAt = now
	} else {
		existing, err := firstUser(txn, indexID, u.ID)
		if err != nil {
			return model.User{}, err
		}
		if existing == nil {
			return model.User{}, ErrUserNotFound
		}
		u.CreatedAt = existing.CreatedAt
	}

	if err := checkUnique(txn, indexUsername, u.Username, u.ID, ErrUsernameExists); err != nil {
		return model.User{}, err
	}
	if err := checkUnique(txn, indexEmail, u.Email, u.ID, ErrEmailExists); err != nil {
		return model.User{}, err
	}

	if u.IsNew() {
		u.ID = r.nextID.Add(1)
	}
	u.UpdatedAt = now

	stored := u
	if err := txn.Insert(usersTable, &stored); err != nil {
		return model.User{}, fmt.Errorf("save user: %w", err)
	}
	txn.Commit()

	return u, nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id int64) (model.User, error) {
	return r.findOne(indexID, id)
}

func (r *MemoryUserRepo) FindByUsername(_ context.Context, username string) (model.User, error) {
	return r.findOne(indexUsername, username)
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (model.User, error) {
	return r.findOne(indexEmail, email)
}

func (r *MemoryUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	return r.findMany(func(model.User) bool { return true }, indexID)
}

func (r *MemoryUserRepo) FindByActive(_ context.Context, active bool) ([]model.User, error) {
	return r.findMany(func(model.User) bool { return true }, indexActive, active)
}

// FindByFirstNameContaining ищет пользователей, чьё имя содержит fragment без учёта регистра.
// Пустой fragment подходит всем пользователям.
func (r *MemoryUserRepo) FindByFirstNameContaining(_ context.Context, fragment string) ([]model.User, error) {
	needle := strings.ToLower(fragment)
	return r.findMany(func(u model.User) bool {
		return strings.Contains(strings.ToLower(u.FirstName), needle)
	}, indexID)
}

func (r *MemoryUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) ([]model.User, error) {
	return r.findMany(func(u model.User) bool {
		return u.Username == username || u.Email == email
	}, indexID)
}

func (r *MemoryUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return r.exists(indexUsername, username)
}

func (r *MemoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.exists(indexEmail, email)
}

func (r *MemoryUserRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	return r.exists(indexID, id)
}

func (r *MemoryUserRepo) CountByActive(_ context.Context, active bool) (int64, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(usersTable, indexActive, active)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	var n int64
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}

// DeleteByID удаляет пользователя. Если записи нет, возвращает ErrUserNotFound.
func (r *MemoryUserRepo) DeleteByID(_ context.Context, id int64) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	if err := txn.Delete(usersTable, &model.User{ID: id}); err != nil {
		if errors.Is(err, memdb.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	txn.Commit()
	return nil
}

func (r *MemoryUserRepo) findOne(index string, arg any) (model.User, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	u, err := firstUser(txn, index, arg)
	if err != nil {
		return model.User{}, err
	}
	if u == nil {
		return model.User{}, ErrUserNotFound
	}
	return *u, nil
}

func (r *MemoryUserRepo) findMany(match func(model.User) bool, index string, args ...any) ([]model.User, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(usersTable, index, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	users := make([]model.User, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		u := *obj.(*model.User)
		if match(u) {
			users = append(users, u)
		}
	}

	// порядок ключей int-индекса memdb не совпадает с числовым
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepo) exists(index string, arg any) (bool, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	u, err := firstUser(txn, index, arg)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func firstUser(txn *memdb.Txn, index string, arg any) (*model.User, error) {
	obj, err := txn.First(usersTable, index, arg)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*model.User), nil
}

// checkUnique возвращает conflictErr, если значение уже занято другим пользователем.
func checkUnique(txn *memdb.Txn, index, value string, selfID int64, conflictErr error) error {
	owner, err := firstUser(txn, index, value)
	if err != nil {
		return err
	}
	if owner != nil && owner.ID != selfID {
		return conflictErr
	}
	return nil
}
