package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Register creates a local identity with default grants, mails its
// activation link and signs it in. Every write and the mail delivery happen
// in one transaction.
func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	var (
		res AuthResult
		uid int64
	)
	err := s.inTx(ctx, "register", &uid, func(tx Tx) error {
		email := normalizeEmail(in.Email)
		if err := checkAvailable(ctx, tx.Identities(), email, in); err != nil {
			return err
		}

		hash, err := s.local.HashPassword(in.Password)
		if err != nil {
			return err
		}

		identity, err := tx.Identities().Create(ctx, email, hash)
		if errors.Is(err, ErrDuplicate) {
			return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(msgEmailTaken, in.Email), Err: err}
		}
		if err != nil {
			return fmt.Errorf("create identity: %w", err)
		}
		uid = identity.ID

		if err := tx.LockIdentity(ctx, identity.ID); err != nil {
			return err
		}

		link := s.newLink()
		if err := s.provision(ctx, tx, identity.ID, ProviderLocal, ActivationTicket{
			IdentityID: identity.ID,
			Link:       link,
		}); err != nil {
			return err
		}

		if err := tx.Identities().CreateProfile(ctx, identity.ID, Profile{
			Name:         in.Name,
			Surname:      in.Surname,
			Nickname:     in.Nickname,
			PhoneNum:     in.PhoneNum,
			Location:     in.Location,
			DateBirthday: in.DateBirthday,
			DateRegister: s.now().UTC().Truncate(24 * time.Hour),
		}); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		tokens, err := s.issue(ctx, tx, identity.ID)
		if err != nil {
			return err
		}

		// Last step: nothing is mailed for a registration that failed to persist.
		if err := s.mailer.SendActivationMail(ctx, email, s.activationURL(link)); err != nil {
			return fmt.Errorf("send activation mail: %w", err)
		}

		res = newAuthResult(identity.ID, ProviderLocal, tokens, EffectiveGrant{
			Modules:    DefaultModuleGrant(),
			Attributes: DefaultAttributeGrant(),
		})
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// checkAvailable rejects a registration whose email, nickname or phone is
// already in use. The first conflict in that order decides the message.
func checkAvailable(ctx context.Context, ids IdentityRepository, email string, in RegisterInput) error {
	_, err := ids.ByEmail(ctx, email)
	switch {
	case err == nil:
		return badRequest(msgEmailTaken, in.Email)
	case !errors.Is(err, ErrRecordNotFound):
		return fmt.Errorf("check email: %w", err)
	}

	taken, err := ids.NicknameTaken(ctx, in.Nickname)
	if err != nil {
		return fmt.Errorf("check nickname: %w", err)
	}
	if taken {
		return badRequest(msgNicknameTaken, in.Nickname)
	}

	taken, err = ids.PhoneTaken(ctx, in.PhoneNum)
	if err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	if taken {
		return badRequest(msgPhoneTaken)
	}
	return nil
}

// provision writes the rows every new identity owns besides its profile:
// provider binding, activation ticket, default grants, role and player data.
func (s *Service) provision(ctx context.Context, tx Tx, identityID int64, provider ProviderType, ticket ActivationTicket) error {
	ids := tx.Identities()
	if err := ids.BindProvider(ctx, identityID, provider); err != nil {
		return fmt.Errorf("bind provider: %w", err)
	}
	if err := tx.Activations().Create(ctx, ticket); err != nil {
		return fmt.Errorf("create activation: %w", err)
	}
	if err := tx.Grants().CreateModules(ctx, identityID, DefaultModuleGrant()); err != nil {
		return fmt.Errorf("create module grant: %w", err)
	}
	if err := tx.Grants().CreateAttributes(ctx, identityID, DefaultAttributeGrant()); err != nil {
		return fmt.Errorf("create attribute grant: %w", err)
	}
	if err := ids.AssignRole(ctx, identityID, RolePlayer); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	if err := ids.CreatePlayer(ctx, identityID); err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}
