package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/vouchd/vouchd/internal/core/domain"
	"github.com/vouchd/vouchd/internal/core/ports"
)

// BannedTokenStore is the durable revocation registry.
type BannedTokenStore struct {
	db *sql.DB
}

func NewBannedTokenStore(db *sql.DB) *BannedTokenStore {
	return &BannedTokenStore{db: db}
}

func (s *BannedTokenStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return domain.ErrMissingToken
	}

	query := `
		INSERT INTO banned_tokens (token, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, token, expiresAt)
	return err
}

func (s *BannedTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, domain.ErrMissingToken
	}

	query := `SELECT EXISTS (SELECT 1 FROM banned_tokens WHERE token = $1)`
	var revoked bool
	if err := s.db.QueryRowContext(ctx, query, token).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

// DeleteExpired drops revocation records whose tokens have passed their
// natural expiry. Intended for a periodic sweep; verification does not
// depend on it.
func (s *BannedTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM banned_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ ports.BannedTokenStore = (*BannedTokenStore)(nil)
