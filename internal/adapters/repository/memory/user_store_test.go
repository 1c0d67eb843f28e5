package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vouchd/vouchd/internal/core/domain"
	"github.com/vouchd/vouchd/internal/core/services"
)

func newTestUser(t *testing.T, email, password string) domain.User {
	t.Helper()

	parsedEmail, err := domain.ParseEmail(email)
	require.NoError(t, err)

	hash, err := services.NewArgon2Hasher().Hash(password)
	require.NoError(t, err)

	return domain.User{Email: parsedEmail, PasswordHash: hash}
}

func TestUserStore_AddAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(services.NewArgon2Hasher())
	user := newTestUser(t, "a@b.com", "password1")

	require.NoError(t, store.Add(ctx, user))

	got, err := store.Get(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	err = store.Add(ctx, user)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	other, err := domain.ParseEmail("b@a.com")
	require.NoError(t, err)
	_, err = store.Get(ctx, other)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserStore_ValidateCredentials(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(services.NewArgon2Hasher())
	user := newTestUser(t, "a@b.com", "password1")
	require.NoError(t, store.Add(ctx, user))

	good, err := domain.ParsePassword("password1")
	require.NoError(t, err)
	assert.NoError(t, store.ValidateCredentials(ctx, user.Email, good))

	bad, err := domain.ParsePassword("wrong password")
	require.NoError(t, err)
	assert.ErrorIs(t, store.ValidateCredentials(ctx, user.Email, bad), domain.ErrInvalidCredentials)

	unknown, err := domain.ParseEmail("b@a.com")
	require.NoError(t, err)
	assert.ErrorIs(t, store.ValidateCredentials(ctx, unknown, good), domain.ErrUserNotFound)
}

func TestUserStore_ConcurrentAddSameEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(services.NewArgon2Hasher())
	user := newTestUser(t, "a@b.com", "password1")

	const attempts = 32
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Add(ctx, user)
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent add must succeed")
}

func TestUserStore_DistinctEmailsDoNotConflict(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(services.NewArgon2Hasher())

	require.NoError(t, store.Add(ctx, newTestUser(t, "a@b.com", "password1")))
	require.NoError(t, store.Add(ctx, newTestUser(t, "b@a.com", "password1")))
}
