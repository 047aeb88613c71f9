package auth

import (
	"context"
	"errors"
	"fmt"
)

// Logout ends the session described by in. The stored session must hold
// exactly the supplied token pair and the identity must be bound to the
// supplied provider. OAuth2 access tokens are revoked upstream before the
// session row is deleted. A token the provider rejects as invalid counts as
// revoked; any other revoke failure keeps the session.
func (s *Service) Logout(ctx context.Context, in LogoutInput) (Success, error) {
	uid := in.UserID
	err := s.inTx(ctx, "logout", &uid, func(tx Tx) error {
		if err := tx.LockIdentity(ctx, in.UserID); err != nil {
			return err
		}

		sessions := NewSessions(tx.Sessions())
		ok, err := sessions.Matches(ctx, in.UserID, in.AccessToken, in.RefreshToken)
		if err != nil {
			return err
		}
		if !ok {
			return badRequest(msgNotAuthenticated)
		}

		bound, err := tx.Identities().Provider(ctx, in.UserID)
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			return fmt.Errorf("load provider binding: %w", err)
		}
		if err != nil || bound != in.TypeAuth {
			return &Error{Kind: KindBadRequest, Message: msgNotAuthenticated, Err: err}
		}

		provider, err := s.providers.get(bound)
		if err != nil {
			return err
		}
		// An expired or already revoked token is rejected upstream; there is
		// nothing left to revoke, so the session still ends.
		if err := provider.RevokeToken(ctx, in.AccessToken); err != nil && !errors.Is(err, ErrInvalidToken) {
			return err
		}

		return sessions.Delete(ctx, in.UserID)
	})
	if err != nil {
		return Success{}, err
	}
	return Success{Success: true}, nil
}
