package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/netman-app/authkit/pkg/jwt"
)

const (
	// DefaultBcryptCost is the work factor used for new password hashes.
	DefaultBcryptCost = 16
	// MaxPasswordBytes is the longest password bcrypt accepts, in bytes.
	MaxPasswordBytes = 72
)

// LocalProvider authenticates identities by password and signs its own
// tokens.
type LocalProvider struct {
	issuer TokenIssuer
	cost   int
}

var _ Provider = (*LocalProvider)(nil)

// NewLocalProvider returns a LocalProvider. A cost outside bcrypt's range
// falls back to DefaultBcryptCost.
func NewLocalProvider(issuer TokenIssuer, cost int) *LocalProvider {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &LocalProvider{issuer: issuer, cost: cost}
}

// Type returns ProviderLocal.
func (p *LocalProvider) Type() ProviderType { return ProviderLocal }

// HashPassword returns the bcrypt hash of password. Passwords longer than
// MaxPasswordBytes are rejected as a bad request.
func (p *LocalProvider) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &Error{Kind: KindBadRequest, Message: msgPasswordTooLong, Err: err}
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Authenticate compares password with the stored hash of identity. A
// mismatch is a bad request carrying the wrong password message.
func (p *LocalProvider) Authenticate(_ context.Context, identity Identity, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return &Error{Kind: KindBadRequest, Message: msgWrongPassword, Err: err}
	default:
		return fmt.Errorf("compare password: %w", err)
	}
}

// ValidateAccessToken verifies a locally signed access token and returns
// its subject.
func (p *LocalProvider) ValidateAccessToken(_ context.Context, token string) (Principal, error) {
	claims, err := p.issuer.VerifyAccess(token)
	if err != nil {
		return Principal{}, tokenErr(err)
	}
	return Principal{UserID: claims.UserID, TypeAuth: ProviderLocal}, nil
}

// RefreshAccessToken verifies the refresh token and signs a fresh access
// token for its subject.
func (p *LocalProvider) RefreshAccessToken(_ context.Context, refreshToken string) (string, error) {
	claims, err := p.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return "", tokenErr(err)
	}
	return p.issuer.IssueAccess(claims.UserID)
}

// RevokeToken is a no-op: local tokens are stateless and are revoked by
// deleting the session row.
func (p *LocalProvider) RevokeToken(context.Context, string) error { return nil }

func tokenErr(err error) error {
	if errors.Is(err, jwt.ErrInvalidToken) {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return err
}
