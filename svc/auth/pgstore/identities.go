package pgstore

import (
	"context"
	"fmt"

	"github.com/netman-app/authkit/svc/auth"
)

type identities struct{ q querier }

func (r identities) ByEmail(ctx context.Context, email string) (auth.Identity, error) {
	return r.scanIdentity(ctx, qIdentityByEmail, email)
}

func (r identities) ByID(ctx context.Context, id int64) (auth.Identity, error) {
	return r.scanIdentity(ctx, qIdentityByID, id)
}

func (r identities) scanIdentity(ctx context.Context, query string, arg any) (auth.Identity, error) {
	var i auth.Identity
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&i.ID, &i.Email, &i.PasswordHash, &i.CreatedAt)
	if err != nil {
		return auth.Identity{}, mapErr(err)
	}
	return i, nil
}

func (r identities) NicknameTaken(ctx context.Context, nickname string) (bool, error) {
	return r.exists(ctx, qNicknameTaken, nickname)
}

func (r identities) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, qPhoneTaken, phone)
}

func (r identities) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.q.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r identities) Create(ctx context.Context, email, passwordHash string) (auth.Identity, error) {
	i := auth.Identity{Email: email, PasswordHash: passwordHash}
	err := r.q.QueryRowContext(ctx, qCreateIdentity, email, passwordHash).Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		return auth.Identity{}, mapErr(err)
	}
	return i, nil
}

func (r identities) BindProvider(ctx context.Context, identityID int64, provider auth.ProviderType) error {
	_, err := r.q.ExecContext(ctx, qBindProvider, identityID, int(provider))
	return mapErr(err)
}

func (r identities) Provider(ctx context.Context, identityID int64) (auth.ProviderType, error) {
	var t int
	if err := r.q.QueryRowContext(ctx, qProvider, identityID).Scan(&t); err != nil {
		return 0, mapErr(err)
	}
	return auth.ProviderType(t), nil
}

func (r identities) CreateProfile(ctx context.Context, identityID int64, p auth.Profile) error {
	_, err := r.q.ExecContext(ctx, qCreateProfile,
		identityID, p.Name, p.Surname, p.Nickname, p.PhoneNum, p.Location,
		p.DateBirthday, p.RefImage, p.DateRegister,
	)
	return mapErr(err)
}

func (r identities) AssignRole(ctx context.Context, identityID int64, role string) error {
	_, err := r.q.ExecContext(ctx, qAssignRole, identityID, role)
	return mapErr(err)
}

// CreatePlayer stores the default player rating and coordinates.
func (r identities) CreatePlayer(ctx context.Context, identityID int64) error {
	if _, err := r.q.ExecContext(ctx, qCreatePlayer, identityID); err != nil {
		return fmt.Errorf("player data: %w", mapErr(err))
	}
	if _, err := r.q.ExecContext(ctx, qCreateCoords, identityID); err != nil {
		return fmt.Errorf("player coordinates: %w", mapErr(err))
	}
	return nil
}
