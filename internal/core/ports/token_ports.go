package ports

import (
	"context"
	"time"

	"github.com/vouchd/vouchd/internal/core/domain"
)

// BannedTokenStore is the revocation registry. Both methods reject empty
// tokens with domain.ErrMissingToken. Revoke is idempotent; expiresAt is the
// token's own expiry and may be used to evict stale entries.
type BannedTokenStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenAuthority issues and decodes signed, time-bound session tokens.
type TokenAuthority interface {
	Issue(email domain.Email) (string, error)
	Decode(token string) (domain.Claims, error)
	TTL() time.Duration
}

// PasswordHasher hashes passwords for storage and verifies candidates
// against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}
