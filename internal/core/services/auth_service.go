package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vouchd/vouchd/internal/core/domain"
	"github.com/vouchd/vouchd/internal/core/ports"
)

// AuthService composes the user directory, token authority and revocation
// registry into the four user-facing operations.
type AuthService struct {
	users  ports.UserStore
	banned ports.BannedTokenStore
	tokens ports.TokenAuthority
	hasher ports.PasswordHasher
	logger *slog.Logger
}

func NewAuthService(users ports.UserStore, banned ports.BannedTokenStore, tokens ports.TokenAuthority, hasher ports.PasswordHasher, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:  users,
		banned: banned,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

// Signup parses the raw credentials, hashes the password and adds the user.
// The directory Add is the single atomic commit point; a failed signup leaves
// nothing visible to other callers.
func (s *AuthService) Signup(ctx context.Context, email, password string, requires2FA bool) error {
	parsedEmail, err := domain.ParseEmail(email)
	if err != nil {
		return err
	}
	parsedPassword, err := domain.ParsePassword(password)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(parsedPassword.String())
	if err != nil {
		return fmt.Errorf("%w: failed to hash password: %w", domain.ErrInternal, err)
	}

	user := domain.User{
		Email:        parsedEmail,
		PasswordHash: hash,
		Requires2FA:  requires2FA,
	}

	if err := s.users.Add(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: failed to add user: %w", domain.ErrInternal, err)
	}

	return nil
}

// Login validates the credentials and issues a fresh token. Unknown user and
// wrong password both surface as domain.ErrAuthenticationFailed so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	parsedEmail, err := domain.ParseEmail(email)
	if err != nil {
		return ports.LoginResult{}, err
	}
	parsedPassword, err := domain.ParsePassword(password)
	if err != nil {
		return ports.LoginResult{}, err
	}

	if err := s.users.ValidateCredentials(ctx, parsedEmail, parsedPassword); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Info("login rejected", "email", parsedEmail.String())
			return ports.LoginResult{}, domain.ErrAuthenticationFailed
		}
		return ports.LoginResult{}, fmt.Errorf("%w: failed to validate credentials: %w", domain.ErrInternal, err)
	}

	token, err := s.tokens.Issue(parsedEmail)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("%w: failed to issue token: %w", domain.ErrInternal, err)
	}

	return ports.LoginResult{Token: token, ExpiresIn: s.tokens.TTL()}, nil
}

// Logout revokes a currently valid token. Revoked, expired and malformed
// tokens are distinct errors, not silent successes.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.VerifyToken(ctx, token)
	if err != nil {
		return err
	}

	if err := s.banned.Revoke(ctx, token, claims.ExpiresAt); err != nil {
		return fmt.Errorf("%w: failed to revoke token: %w", domain.ErrInternal, err)
	}

	s.logger.Info("token revoked", "subject", claims.Subject, "jti", claims.TokenID)
	return nil
}

// VerifyToken runs the verification pipeline: revocation is checked before
// signature and expiry so that a blacklisted token is always reported as
// revoked, however long it has left to live.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (domain.Claims, error) {
	if token == "" {
		return domain.Claims{}, domain.ErrMissingToken
	}

	revoked, err := s.banned.IsRevoked(ctx, token)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: failed to check revocation: %w", domain.ErrInternal, err)
	}
	if revoked {
		return domain.Claims{}, domain.ErrTokenRevoked
	}

	claims, err := s.tokens.Decode(token)
	if err != nil {
		s.logger.Debug("token rejected", "reason", err)
		return domain.Claims{}, err
	}

	return claims, nil
}

var _ ports.AuthService = (*AuthService)(nil)
