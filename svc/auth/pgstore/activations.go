package pgstore

import (
	"context"

	"github.com/netman-app/authkit/svc/auth"
)

type activations struct{ q querier }

func (r activations) Create(ctx context.Context, t auth.ActivationTicket) error {
	_, err := r.q.ExecContext(ctx, qCreateActivation, t.IdentityID, t.Link, t.IsActivated)
	return mapErr(err)
}

func (r activations) ByLink(ctx context.Context, link string) (auth.ActivationTicket, error) {
	var t auth.ActivationTicket
	err := r.q.QueryRowContext(ctx, qActivationByLink, link).Scan(&t.IdentityID, &t.Link, &t.IsActivated)
	if err != nil {
		return auth.ActivationTicket{}, mapErr(err)
	}
	return t, nil
}

// MarkActivated sets is_activated; it is a no-op for an already activated
// ticket and ErrRecordNotFound for an unknown link.
func (r activations) MarkActivated(ctx context.Context, link string) error {
	return execOne(ctx, r.q, qMarkActivated, link)
}
