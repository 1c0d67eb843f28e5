package memory

import (
	"context"
	"time"

	"github.com/vouchd/vouchd/internal/core/domain"
	"github.com/vouchd/vouchd/internal/core/ports"
)

// sweepThreshold is the per-shard entry count that triggers an eviction pass
// on the next write.
const sweepThreshold = 1024

// BannedTokenStore is an in-memory revocation registry. Each entry records
// the token's own expiry; entries whose expiry has passed are dropped lazily,
// which keeps the set from growing without bound. A dropped entry is safe:
// verification then reports the token as expired instead of revoked, and both
// are rejected.
type BannedTokenStore struct {
	tokens *shardedMap[time.Time]
	now    func() time.Time
}

func NewBannedTokenStore() *BannedTokenStore {
	return &BannedTokenStore{
		tokens: newShardedMap[time.Time](),
		now:    time.Now,
	}
}

// Revoke inserts token with its expiry. An empty token is a caller error;
// revoking an already-revoked token succeeds silently.
func (s *BannedTokenStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return domain.ErrMissingToken
	}

	sh := s.tokens.shardFor(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if len(sh.m) >= sweepThreshold {
		now := s.now()
		for t, exp := range sh.m {
			if exp.Before(now) {
				delete(sh.m, t)
			}
		}
	}

	sh.m[token] = expiresAt
	return nil
}

func (s *BannedTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	if token == "" {
		return false, domain.ErrMissingToken
	}

	sh := s.tokens.shardFor(token)
	sh.mu.RLock()
	expiresAt, ok := sh.m[token]
	sh.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if expiresAt.Before(s.now()) {
		sh.mu.Lock()
		// re-check under the write lock
		if exp, ok := sh.m[token]; ok && exp.Before(s.now()) {
			delete(sh.m, token)
		}
		sh.mu.Unlock()
		return false, nil
	}

	return true, nil
}

var _ ports.BannedTokenStore = (*BannedTokenStore)(nil)
