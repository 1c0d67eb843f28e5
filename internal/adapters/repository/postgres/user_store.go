// Package postgres provides durable store implementations on database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/vouchd/vouchd/internal/core/domain"
	"github.com/vouchd/vouchd/internal/core/ports"
)

const uniqueViolation = "23505"

// UserStore is the durable user directory. The users table carries a primary
// key on email, so concurrent inserts of the same address race inside the
// database and exactly one wins.
type UserStore struct {
	db     *sql.DB
	hasher ports.PasswordHasher
}

func NewUserStore(db *sql.DB, hasher ports.PasswordHasher) *UserStore {
	return &UserStore{db: db, hasher: hasher}
}

func (s *UserStore) Add(ctx context.Context, user domain.User) error {
	query := `INSERT INTO users (email, password_hash, requires_2fa) VALUES ($1, $2, $3)`
	_, err := s.db.ExecContext(ctx, query, user.Email.String(), user.PasswordHash, user.Requires2FA)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, email domain.Email) (domain.User, error) {
	query := `SELECT email, password_hash, requires_2fa FROM users WHERE email = $1`

	var (
		rawEmail string
		user     domain.User
	)
	err := s.db.QueryRowContext(ctx, query, email.String()).Scan(&rawEmail, &user.PasswordHash, &user.Requires2FA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	parsedEmail, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return domain.User{}, err
	}
	user.Email = parsedEmail
	return user, nil
}

func (s *UserStore) ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error {
	user, err := s.Get(ctx, email)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(password.String(), user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}
	return nil
}

var _ ports.UserStore = (*UserStore)(nil)
