package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"docsite/internal/model"
	"docsite/internal/repository"
)

// UserStore is a database/sql implementation of repository.UserRepository.
type UserStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

var _ repository.UserRepository = (*UserStore)(nil)

func scanCredential(s rowScanner) (*model.Credential, error) {
	var c model.Credential
	if err := s.Scan(&c.User.ID, &c.User.Username, &c.PasswordHash, &c.User.Name, &c.User.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a user. A taken username yields repository.ErrConflict.
func (r *UserStore) Create(ctx context.Context, username, passwordHash, name string) (*model.User, error) {
	const q = `INSERT INTO users (username, password, name, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	u := model.User{Username: username, Name: name, CreatedAt: r.now()}
	if err := r.db.QueryRowContext(ctx, q, username, passwordHash, name, u.CreatedAt).Scan(&u.ID); err != nil {
		if IsUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserStore) FindByUsername(ctx context.Context, username string) (*model.Credential, error) {
	const q = `SELECT id, username, password, name, created_at FROM users WHERE username = $1`
	return scanCredential(r.db.QueryRowContext(ctx, q, username))
}

func (r *UserStore) FindByID(ctx context.Context, id int64) (*model.Credential, error) {
	const q = `SELECT id, username, password, name, created_at FROM users WHERE id = $1`
	return scanCredential(r.db.QueryRowContext(ctx, q, id))
}

// UpdatePassword replaces the stored hash and returns sql.ErrNoRows for an unknown user.
func (r *UserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
