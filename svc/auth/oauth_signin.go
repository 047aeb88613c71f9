package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/netman-app/authkit/pkg/logger"
)

// OAuthURL starts the OAuth2 flow and returns the consent URL. The state it
// embeds is accepted once by OAuthSignIn within the configured TTL.
func (s *Service) OAuthURL(ctx context.Context) (string, error) {
	var authURL string
	err := s.track(ctx, "oauth_url", nil, func() error {
		op, err := s.providers.oauth()
		if err != nil {
			return err
		}
		if s.states == nil {
			return fmt.Errorf("%w: no oauth state store configured", ErrUnsupported)
		}

		state, err := generateState()
		if err != nil {
			return fmt.Errorf("generate state: %w", err)
		}
		if err := s.states.Save(ctx, state, s.stateTTL); err != nil {
			return err
		}
		authURL = op.AuthURL(state)
		return nil
	})
	if err != nil {
		return "", err
	}
	return authURL, nil
}

// OAuthSignIn completes the OAuth2 flow. An unknown email provisions a new,
// already activated identity bound to OAuth2; an email bound to another
// provider is rejected. The provider's token pair becomes the session.
func (s *Service) OAuthSignIn(ctx context.Context, in OAuthSignInInput, scope Scope) (AuthResult, error) {
	var (
		res AuthResult
		uid int64
	)
	op := "oauth_sign_in"
	if scope == ScopeManagement {
		op = "management_oauth_sign_in"
	}

	err := s.track(ctx, op, &uid, func() error {
		provider, err := s.providers.oauth()
		if err != nil {
			return err
		}
		if s.states == nil {
			return fmt.Errorf("%w: no oauth state store configured", ErrUnsupported)
		}

		ok, err := s.states.Consume(ctx, in.State)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidState
		}

		tokens, err := provider.Exchange(ctx, in.Code)
		if err != nil {
			return err
		}
		principal, err := provider.ValidateAccessToken(ctx, tokens.AccessToken)
		if err != nil {
			return err
		}
		email := normalizeEmail(principal.Email)

		return s.store.InTx(ctx, func(tx Tx) error {
			id, err := s.oauthIdentity(ctx, tx, email)
			if err != nil {
				return err
			}
			uid = id

			if err := tx.LockIdentity(ctx, id); err != nil {
				return err
			}

			grant, err := resolveFor(ctx, tx, id, scope)
			if err != nil {
				return err
			}

			sessions := NewSessions(tx.Sessions())
			if tokens.RefreshToken == "" {
				// Google omits the refresh token on repeated consent; keep
				// the one already on record.
				prev, ok, err := sessions.Lookup(ctx, id)
				if err != nil {
					return err
				}
				if ok {
					tokens.RefreshToken = prev.RefreshToken
				}
			}
			if err := sessions.Save(ctx, id, tokens); err != nil {
				return err
			}

			res = newAuthResult(id, ProviderOAuth2, tokens, grant)
			return nil
		})
	})
	if err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// oauthIdentity returns the identity bound to email, provisioning it on
// first sign-in.
func (s *Service) oauthIdentity(ctx context.Context, tx Tx, email string) (int64, error) {
	identity, err := tx.Identities().ByEmail(ctx, email)
	switch {
	case err == nil:
		bound, err := boundProvider(ctx, tx, identity.ID)
		if err != nil {
			return 0, err
		}
		if bound != ProviderOAuth2 {
			return 0, badRequest(msgWrongProvider, email, bound.ServiceName())
		}
		return identity.ID, nil
	case !errors.Is(err, ErrRecordNotFound):
		return 0, fmt.Errorf("load identity: %w", err)
	}

	identity, err = tx.Identities().Create(ctx, email, "")
	if err != nil {
		return 0, fmt.Errorf("create identity: %w", err)
	}
	err = s.provision(ctx, tx, identity.ID, ProviderOAuth2, ActivationTicket{
		IdentityID:  identity.ID,
		Link:        s.newLink(),
		IsActivated: true,
	})
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "oauth identity provisioned", logger.Component("auth"), logger.Provider(ProviderOAuth2.String()), logger.UserID(identity.ID))
	return identity.ID, nil
}
