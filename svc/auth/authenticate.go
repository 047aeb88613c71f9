package auth

import (
	"context"
	"errors"
	"fmt"
)

// Authenticate resolves the principal behind an access token presented with
// its provider type. The token must be valid for the provider and must be
// the access token of the identity's current session.
func (s *Service) Authenticate(ctx context.Context, typeAuth ProviderType, accessToken string) (Principal, error) {
	var (
		principal Principal
		uid       int64
	)
	err := s.track(ctx, "authenticate", &uid, func() error {
		if accessToken == "" {
			return newError(KindUnauthorized, msgAuthRequired)
		}
		provider, err := s.providers.get(typeAuth)
		if err != nil {
			return &Error{Kind: KindUnauthorized, Message: msgUnauthorized, Err: err}
		}

		p, err := provider.ValidateAccessToken(ctx, accessToken)
		if err != nil {
			if errors.Is(err, ErrProviderUnavailable) {
				return err
			}
			return &Error{Kind: KindUnauthorized, Message: msgUnauthorized, Err: err}
		}

		return s.store.InTx(ctx, func(tx Tx) error {
			if typeAuth == ProviderOAuth2 {
				identity, err := tx.Identities().ByEmail(ctx, normalizeEmail(p.Email))
				if err != nil {
					return unauthenticated(err)
				}
				p.UserID = identity.ID
				p.Email = identity.Email
			}
			uid = p.UserID

			bound, err := tx.Identities().Provider(ctx, p.UserID)
			if err != nil {
				return unauthenticated(err)
			}
			if bound != typeAuth {
				return newError(KindUnauthorized, msgUnauthorized)
			}

			sess, ok, err := NewSessions(tx.Sessions()).Lookup(ctx, p.UserID)
			if err != nil {
				return err
			}
			if !ok || sess.AccessToken != accessToken {
				return newError(KindUnauthorized, msgUnauthorized)
			}

			principal = p
			return nil
		})
	})
	if err != nil {
		return Principal{}, err
	}
	return principal, nil
}

func unauthenticated(err error) error {
	if errors.Is(err, ErrRecordNotFound) {
		return &Error{Kind: KindUnauthorized, Message: msgUnauthorized, Err: err}
	}
	return fmt.Errorf("authenticate: %w", err)
}
