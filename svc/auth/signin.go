package auth

import (
	"context"
	"errors"
	"fmt"
)

// SignIn authenticates a local identity by email and password.
func (s *Service) SignIn(ctx context.Context, in SignInInput) (AuthResult, error) {
	return s.signIn(ctx, "sign_in", in, ScopeStandard)
}

// ManagementSignIn is SignIn for the management surface: the effective
// grant must include a privileged module.
func (s *Service) ManagementSignIn(ctx context.Context, in SignInInput) (AuthResult, error) {
	return s.signIn(ctx, "management_sign_in", in, ScopeManagement)
}

func (s *Service) signIn(ctx context.Context, op string, in SignInInput, scope Scope) (AuthResult, error) {
	var (
		res AuthResult
		uid int64
	)
	err := s.inTx(ctx, op, &uid, func(tx Tx) error {
		identity, err := tx.Identities().ByEmail(ctx, normalizeEmail(in.Email))
		if errors.Is(err, ErrRecordNotFound) {
			return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(msgAccountNotFound, in.Email), Err: err}
		}
		if err != nil {
			return fmt.Errorf("load identity: %w", err)
		}
		uid = identity.ID

		if err := tx.LockIdentity(ctx, identity.ID); err != nil {
			return err
		}

		bound, err := boundProvider(ctx, tx, identity.ID)
		if err != nil {
			return err
		}
		if bound != ProviderLocal {
			return badRequest(msgWrongProvider, in.Email, bound.ServiceName())
		}

		if err := s.local.Authenticate(ctx, identity, in.Password); err != nil {
			return err
		}

		grant, err := resolveFor(ctx, tx, identity.ID, scope)
		if err != nil {
			return err
		}

		tokens, err := s.issue(ctx, tx, identity.ID)
		if err != nil {
			return err
		}

		res = newAuthResult(identity.ID, ProviderLocal, tokens, grant)
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// boundProvider returns the persisted provider binding. An identity without
// one was never fully registered.
func boundProvider(ctx context.Context, tx Tx, identityID int64) (ProviderType, error) {
	bound, err := tx.Identities().Provider(ctx, identityID)
	if errors.Is(err, ErrRecordNotFound) {
		return 0, &Error{Kind: KindNotFound, Message: msgNotRegistered, Err: err}
	}
	if err != nil {
		return 0, fmt.Errorf("load provider binding: %w", err)
	}
	return bound, nil
}
