package ports

import (
	"context"

	"github.com/vouchd/vouchd/internal/core/domain"
)

// UserStore is the user directory. Add is the only mutator and must be atomic
// with respect to concurrent adds of the same email.
type UserStore interface {
	Add(ctx context.Context, user domain.User) error
	Get(ctx context.Context, email domain.Email) (domain.User, error)
	ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error
}
