package auth

import (
	"context"
	"errors"
	"fmt"
)

// Activate marks the ticket behind link as activated. Activating an
// already activated ticket succeeds and leaves it activated.
func (s *Service) Activate(ctx context.Context, link string) (Success, error) {
	var uid int64
	err := s.inTx(ctx, "activate", &uid, func(tx Tx) error {
		ticket, err := tx.Activations().ByLink(ctx, link)
		if errors.Is(err, ErrRecordNotFound) {
			return &Error{Kind: KindBadRequest, Message: msgActivationNotFound, Err: err}
		}
		if err != nil {
			return fmt.Errorf("load activation: %w", err)
		}
		uid = ticket.IdentityID

		if err := tx.Activations().MarkActivated(ctx, link); err != nil {
			return fmt.Errorf("mark activated: %w", err)
		}
		return nil
	})
	if err != nil {
		return Success{}, err
	}
	return Success{Success: true}, nil
}
