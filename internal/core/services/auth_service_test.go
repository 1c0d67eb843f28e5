package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vouchd/vouchd/internal/adapters/repository/memory"
	"github.com/vouchd/vouchd/internal/core/domain"
)

func newTestAuthService(t *testing.T, ttl time.Duration) (*AuthService, *TokenAuthority) {
	t.Helper()
	hasher := NewArgon2Hasher()
	authority := NewTokenAuthority([]byte(testSecret), ttl)
	service := NewAuthService(memory.NewUserStore(hasher), memory.NewBannedTokenStore(), authority, hasher, nil)
	return service, authority
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestAuthService(t, 10*time.Minute)

	require.NoError(t, service.Signup(ctx, "a@b.com", "password1", false))

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := service.Signup(ctx, "a@b.com", "password1", false)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("duplicate differs only by case", func(t *testing.T) {
		err := service.Signup(ctx, "A@B.com", "password1", false)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("invalid email", func(t *testing.T) {
		err := service.Signup(ctx, "not-an-email", "password1", false)
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("invalid password", func(t *testing.T) {
		err := service.Signup(ctx, "c@d.com", "short", false)
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestAuthService(t, 10*time.Minute)
	require.NoError(t, service.Signup(ctx, "a@b.com", "password1", false))

	t.Run("success issues a verifiable token", func(t *testing.T) {
		result, err := service.Login(ctx, "a@b.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, result.ExpiresIn)

		claims, err := service.VerifyToken(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", claims.Subject)
	})

	t.Run("every login rotates the token", func(t *testing.T) {
		first, err := service.Login(ctx, "a@b.com", "password1")
		require.NoError(t, err)
		second, err := service.Login(ctx, "a@b.com", "password1")
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := service.Login(ctx, "unknown@x.com", "whatever12")
		_, errWrong := service.Login(ctx, "a@b.com", "wrongpass1")

		assert.ErrorIs(t, errUnknown, domain.ErrAuthenticationFailed)
		assert.ErrorIs(t, errWrong, domain.ErrAuthenticationFailed)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("malformed input is a validation error, not auth failure", func(t *testing.T) {
		_, err := service.Login(ctx, "not-an-email", "password1")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)

		_, err = service.Login(ctx, "a@b.com", "short")
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	})
}

func TestAuthService_LogoutAndVerify(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestAuthService(t, 10*time.Minute)
	require.NoError(t, service.Signup(ctx, "a@b.com", "password1", false))

	result, err := service.Login(ctx, "a@b.com", "password1")
	require.NoError(t, err)

	_, err = service.VerifyToken(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, result.Token))

	t.Run("revoked token stays revoked", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := service.VerifyToken(ctx, result.Token)
			assert.ErrorIs(t, err, domain.ErrTokenRevoked)
		}
	})

	t.Run("second logout is an error, not silent success", func(t *testing.T) {
		err := service.Logout(ctx, result.Token)
		assert.ErrorIs(t, err, domain.ErrTokenRevoked)
	})

	t.Run("empty token", func(t *testing.T) {
		assert.ErrorIs(t, service.Logout(ctx, ""), domain.ErrMissingToken)
		_, err := service.VerifyToken(ctx, "")
		assert.ErrorIs(t, err, domain.ErrMissingToken)
	})

	t.Run("malformed token cannot be logged out", func(t *testing.T) {
		err := service.Logout(ctx, "invalid_token")
		assert.ErrorIs(t, err, domain.ErrTokenMalformed)
	})
}

func TestAuthService_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	service, authority := newTestAuthService(t, 10*time.Minute)
	require.NoError(t, service.Signup(ctx, "a@b.com", "password1", false))

	result, err := service.Login(ctx, "a@b.com", "password1")
	require.NoError(t, err)

	authority.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	_, err = service.VerifyToken(ctx, result.Token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.NotErrorIs(t, err, domain.ErrTokenMalformed)

	// an expired token cannot be logged out either
	assert.ErrorIs(t, service.Logout(ctx, result.Token), domain.ErrTokenExpired)
}

func TestAuthService_RevocationBeatsExpiry(t *testing.T) {
	ctx := context.Background()
	service, authority := newTestAuthService(t, 10*time.Minute)
	require.NoError(t, service.Signup(ctx, "a@b.com", "password1", false))

	result, err := service.Login(ctx, "a@b.com", "password1")
	require.NoError(t, err)
	require.NoError(t, service.Logout(ctx, result.Token))

	// still well within the ttl, yet the revocation wins
	authority.now = func() time.Time { return time.Now().Add(1 * time.Minute) }

	_, err = service.VerifyToken(ctx, result.Token)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}
