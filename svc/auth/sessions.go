package auth

import (
	"context"
	"errors"
	"fmt"
)

// Sessions is the token-pair table seen by the use cases: one row per
// identity, overwritten on every issue.
type Sessions struct {
	store SessionStore
}

// NewSessions wraps a SessionStore.
func NewSessions(store SessionStore) Sessions {
	return Sessions{store: store}
}

// Save stores pair as the only session of identityID. Last write wins.
func (s Sessions) Save(ctx context.Context, identityID int64, pair Tokens) error {
	err := s.store.Upsert(ctx, Session{
		IdentityID:   identityID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Lookup returns the session of identityID. ok is false when none exists.
func (s Sessions) Lookup(ctx context.Context, identityID int64) (Session, bool, error) {
	return found(s.store.ByIdentity(ctx, identityID))
}

// ByRefreshToken returns the session holding refreshToken.
func (s Sessions) ByRefreshToken(ctx context.Context, refreshToken string) (Session, bool, error) {
	return found(s.store.ByRefreshToken(ctx, refreshToken))
}

// Matches reports whether the stored session of identityID holds exactly
// accessToken and refreshToken.
func (s Sessions) Matches(ctx context.Context, identityID int64, accessToken, refreshToken string) (bool, error) {
	sess, ok, err := s.Lookup(ctx, identityID)
	if err != nil || !ok {
		return false, err
	}
	return sess.AccessToken == accessToken && sess.RefreshToken == refreshToken, nil
}

// Delete removes the session of identityID.
func (s Sessions) Delete(ctx context.Context, identityID int64) error {
	if err := s.store.Delete(ctx, identityID); err != nil && !errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func found(sess Session, err error) (Session, bool, error) {
	switch {
	case err == nil:
		return sess, true, nil
	case errors.Is(err, ErrRecordNotFound):
		return Session{}, false, nil
	default:
		return Session{}, false, fmt.Errorf("load session: %w", err)
	}
}
