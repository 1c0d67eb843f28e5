package ports

import (
	"context"
	"time"

	"github.com/vouchd/vouchd/internal/core/domain"
)

// LoginResult carries the freshly issued token to the transport layer. Every
// login produces a brand-new token; old ones are never reused.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
}

type AuthService interface {
	Signup(ctx context.Context, email, password string, requires2FA bool) error
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Logout(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string) (domain.Claims, error)
}
