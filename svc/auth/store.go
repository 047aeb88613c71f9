package auth

import "context"

// Store is the persisted-store contract consumed by Service.
type Store interface {
	// InTx runs fn in one transaction. It commits when fn returns nil and
	// rolls back otherwise; fn must not retain tx after returning.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx gives access to every repository within a single transaction.
type Tx interface {
	// LockIdentity blocks until no other transaction holds the lock for
	// the identity. The lock is released at commit or rollback.
	LockIdentity(ctx context.Context, identityID int64) error

	Identities() IdentityRepository
	Grants() GrantRepository
	Sessions() SessionStore
	Activations() ActivationRepository
}

// IdentityRepository stores identities with their provider binding and the
// auxiliary rows created at registration. Lookups of absent rows return
// ErrRecordNotFound; unique violations return ErrDuplicate.
type IdentityRepository interface {
	ByEmail(ctx context.Context, email string) (Identity, error)
	ByID(ctx context.Context, id int64) (Identity, error)
	NicknameTaken(ctx context.Context, nickname string) (bool, error)
	PhoneTaken(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, email, passwordHash string) (Identity, error)

	BindProvider(ctx context.Context, identityID int64, provider ProviderType) error
	Provider(ctx context.Context, identityID int64) (ProviderType, error)

	CreateProfile(ctx context.Context, identityID int64, p Profile) error
	AssignRole(ctx context.Context, identityID int64, role string) error
	CreatePlayer(ctx context.Context, identityID int64) error
}

// GrantRepository stores own and group grants.
type GrantRepository interface {
	CreateModules(ctx context.Context, identityID int64, g ModuleGrant) error
	CreateAttributes(ctx context.Context, identityID int64, g AttributeGrant) error
	Modules(ctx context.Context, identityID int64) (ModuleGrant, error)
	Attributes(ctx context.Context, identityID int64) (AttributeGrant, error)

	// GroupOf returns the group of the identity, or ErrRecordNotFound.
	GroupOf(ctx context.Context, identityID int64) (int64, error)
	GroupModules(ctx context.Context, groupID int64) (ModuleGrant, error)
	GroupAttributes(ctx context.Context, groupID int64) (AttributeGrant, error)
}

// SessionStore stores at most one token pair per identity.
type SessionStore interface {
	Upsert(ctx context.Context, s Session) error
	ByIdentity(ctx context.Context, identityID int64) (Session, error)
	ByRefreshToken(ctx context.Context, refreshToken string) (Session, error)
	Delete(ctx context.Context, identityID int64) error
}

// ActivationRepository stores activation tickets.
type ActivationRepository interface {
	Create(ctx context.Context, t ActivationTicket) error
	ByLink(ctx context.Context, link string) (ActivationTicket, error)
	MarkActivated(ctx context.Context, link string) error
}
