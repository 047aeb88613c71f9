package auth

import (
	"context"
	"fmt"

	"github.com/netman-app/authkit/pkg/jwt"
)

// Provider is the capability set shared by every authentication mechanism.
type Provider interface {
	Type() ProviderType

	// Authenticate checks a credential presented for an existing identity.
	Authenticate(ctx context.Context, identity Identity, secret string) error

	// ValidateAccessToken verifies token and returns who it belongs to. For
	// OAuth2 tokens only Email is known; UserID is resolved by the caller.
	ValidateAccessToken(ctx context.Context, token string) (Principal, error)

	// RefreshAccessToken mints a new access token; the refresh token is kept.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	// RevokeToken invalidates an access token upstream, where applicable.
	RevokeToken(ctx context.Context, accessToken string) error
}

// OAuthProvider is a Provider that obtains tokens through an authorization
// code flow.
type OAuthProvider interface {
	Provider
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (Tokens, error)
}

// TokenIssuer signs and verifies the local token pair.
type TokenIssuer interface {
	Issue(identityID int64) (jwt.Pair, error)
	IssueAccess(identityID int64) (string, error)
	VerifyAccess(token string) (jwt.Claims, error)
	VerifyRefresh(token string) (jwt.Claims, error)
}

var _ TokenIssuer = (*jwt.Issuer)(nil)

// providers is the dispatch table keyed by the type_auth discriminator.
type providers map[ProviderType]Provider

func (p providers) get(t ProviderType) (Provider, error) {
	if pr, ok := p[t]; ok {
		return pr, nil
	}
	return nil, &Error{
		Kind:    KindBadRequest,
		Message: msgUnknownProvider,
		Err:     fmt.Errorf("%w: provider %s is not configured", ErrUnsupported, t),
	}
}

func (p providers) oauth() (OAuthProvider, error) {
	pr, err := p.get(ProviderOAuth2)
	if err != nil {
		return nil, err
	}
	op, ok := pr.(OAuthProvider)
	if !ok {
		return nil, &Error{Kind: KindInternal, Message: msgInternal, Err: fmt.Errorf("%w: oauth flow", ErrUnsupported)}
	}
	return op, nil
}
