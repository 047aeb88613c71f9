package auth

import (
	"context"
	"errors"
	"fmt"
)

// Refresh issues a new access token for a live session, keeping its
// refresh token.
func (s *Service) Refresh(ctx context.Context, in RefreshInput) (AuthResult, error) {
	return s.refresh(ctx, "refresh", in, ScopeStandard)
}

// ManagementRefresh is Refresh for the management surface.
func (s *Service) ManagementRefresh(ctx context.Context, in RefreshInput) (AuthResult, error) {
	return s.refresh(ctx, "management_refresh", in, ScopeManagement)
}

func (s *Service) refresh(ctx context.Context, op string, in RefreshInput, scope Scope) (AuthResult, error) {
	var (
		res AuthResult
		uid int64
	)
	err := s.inTx(ctx, op, &uid, func(tx Tx) error {
		provider, err := s.providers.get(in.TypeAuth)
		if err != nil {
			return err
		}

		id, err := s.refreshSubject(ctx, tx, in)
		if err != nil {
			return err
		}
		uid = id

		if err := tx.LockIdentity(ctx, id); err != nil {
			return err
		}

		// The token must still be the one on record; a rotated-out or
		// logged-out token is rejected.
		sess, ok, err := NewSessions(tx.Sessions()).Lookup(ctx, id)
		if err != nil {
			return err
		}
		if !ok || sess.RefreshToken != in.RefreshToken {
			return newError(KindUnauthorized, msgUnauthorized)
		}

		bound, err := boundProvider(ctx, tx, id)
		if err != nil {
			return err
		}
		if bound != in.TypeAuth {
			return badRequest(msgProviderSwitched)
		}

		grant, err := resolveFor(ctx, tx, id, scope)
		if err != nil {
			return err
		}

		access, err := provider.RefreshAccessToken(ctx, in.RefreshToken)
		if err != nil {
			return err
		}
		if access == "" {
			return newError(KindUnauthorized, msgAuthRequired)
		}

		tokens := Tokens{AccessToken: access, RefreshToken: in.RefreshToken}
		if err := NewSessions(tx.Sessions()).Save(ctx, id, tokens); err != nil {
			return err
		}

		res = newAuthResult(id, bound, tokens, grant)
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// refreshSubject resolves the identity a refresh token belongs to. Local
// tokens carry the id in their claims; OAuth2 tokens are opaque and are
// looked up through the stored session and the owner's email.
func (s *Service) refreshSubject(ctx context.Context, tx Tx, in RefreshInput) (int64, error) {
	unauthorized := func(err error) error {
		return &Error{Kind: KindUnauthorized, Message: msgUnauthorized, Err: err}
	}

	switch in.TypeAuth {
	case ProviderLocal:
		claims, err := s.issuer.VerifyRefresh(in.RefreshToken)
		if err != nil {
			return 0, unauthorized(tokenErr(err))
		}
		return claims.UserID, nil

	case ProviderOAuth2:
		sess, ok, err := NewSessions(tx.Sessions()).ByRefreshToken(ctx, in.RefreshToken)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, unauthorized(ErrInvalidToken)
		}
		owner, err := tx.Identities().ByID(ctx, sess.IdentityID)
		if err != nil {
			return 0, identityErr(err)
		}
		identity, err := tx.Identities().ByEmail(ctx, owner.Email)
		if err != nil {
			return 0, identityErr(err)
		}
		return identity.ID, nil

	default:
		return 0, badRequest(msgUnknownProvider)
	}
}

func identityErr(err error) error {
	if errors.Is(err, ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: msgNotRegistered, Err: err}
	}
	return fmt.Errorf("load identity: %w", err)
}
