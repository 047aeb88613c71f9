package pgstore

import (
	"context"

	"github.com/netman-app/authkit/svc/auth"
)

type sessions struct{ q querier }

func (r sessions) Upsert(ctx context.Context, s auth.Session) error {
	_, err := r.q.ExecContext(ctx, qUpsertSession, s.IdentityID, s.AccessToken, s.RefreshToken)
	return mapErr(err)
}

func (r sessions) ByIdentity(ctx context.Context, identityID int64) (auth.Session, error) {
	return r.scan(ctx, qSessionByIdentity, identityID)
}

func (r sessions) ByRefreshToken(ctx context.Context, refreshToken string) (auth.Session, error) {
	return r.scan(ctx, qSessionByRefreshToken, refreshToken)
}

func (r sessions) Delete(ctx context.Context, identityID int64) error {
	_, err := r.q.ExecContext(ctx, qDeleteSession, identityID)
	return mapErr(err)
}

func (r sessions) scan(ctx context.Context, query string, arg any) (auth.Session, error) {
	var s auth.Session
	if err := r.q.QueryRowContext(ctx, query, arg).Scan(&s.IdentityID, &s.AccessToken, &s.RefreshToken); err != nil {
		return auth.Session{}, mapErr(err)
	}
	return s, nil
}
