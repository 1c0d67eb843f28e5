// Package memory provides the default in-memory store implementations.
package memory

import (
	"context"

	"github.com/vouchd/vouchd/internal/core/domain"
	"github.com/vouchd/vouchd/internal/core/ports"
)

// UserStore is an in-memory user directory keyed by normalized email.
type UserStore struct {
	users  *shardedMap[domain.User]
	hasher ports.PasswordHasher
}

func NewUserStore(hasher ports.PasswordHasher) *UserStore {
	return &UserStore{
		users:  newShardedMap[domain.User](),
		hasher: hasher,
	}
}

// Add inserts user unless its email is already taken. The check and insert
// happen under the shard lock, so exactly one of two concurrent adds for the
// same email succeeds.
func (s *UserStore) Add(_ context.Context, user domain.User) error {
	sh := s.users.shardFor(user.Email.String())
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.m[user.Email.String()]; exists {
		return domain.ErrUserAlreadyExists
	}

	sh.m[user.Email.String()] = user
	return nil
}

func (s *UserStore) Get(_ context.Context, email domain.Email) (domain.User, error) {
	sh := s.users.shardFor(email.String())
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	user, ok := sh.m[email.String()]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

// ValidateCredentials looks the user up and verifies the password against the
// stored hash. It returns domain.ErrInvalidCredentials only when the user
// exists but the password differs.
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
