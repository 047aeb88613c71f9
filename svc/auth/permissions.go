package auth

import (
	"context"
	"errors"
	"fmt"
)

// Or returns the flag-wise union of g and other.
func (g ModuleGrant) Or(other ModuleGrant) ModuleGrant {
	return ModuleGrant{
		Player:     g.Player || other.Player,
		Judge:      g.Judge || other.Judge,
		Creator:    g.Creator || other.Creator,
		Moderator:  g.Moderator || other.Moderator,
		Manager:    g.Manager || other.Manager,
		Admin:      g.Admin || other.Admin,
		SuperAdmin: g.SuperAdmin || other.SuperAdmin,
	}
}

// Privileged reports whether g opens the management surface.
func (g ModuleGrant) Privileged() bool {
	return g.Creator || g.Moderator || g.Manager || g.Admin || g.SuperAdmin
}

// Or returns the flag-wise union of g and other.
func (g AttributeGrant) Or(other AttributeGrant) AttributeGrant {
	return AttributeGrant{
		Read:   g.Read || other.Read,
		Write:  g.Write || other.Write,
		Update: g.Update || other.Update,
		Delete: g.Delete || other.Delete,
	}
}

// Merge combines an identity's own grant with its group grant. A nil group
// leaves own unchanged.
func Merge(own EffectiveGrant, group *EffectiveGrant) EffectiveGrant {
	if group == nil {
		return own
	}
	return EffectiveGrant{
		Modules:    own.Modules.Or(group.Modules),
		Attributes: own.Attributes.Or(group.Attributes),
	}
}

// Resolve loads the own and group grants of identityID and merges them.
//
// Missing own grants mean the identity was never fully registered and yield
// a NotFound error. A group with only one of its two grant rows, or with
// neither, is a data inconsistency and yields an Internal error.
func Resolve(ctx context.Context, grants GrantRepository, identityID int64) (EffectiveGrant, error) {
	modules, err := grants.Modules(ctx, identityID)
	if err != nil {
		return EffectiveGrant{}, ownGrantErr(err)
	}
	attributes, err := grants.Attributes(ctx, identityID)
	if err != nil {
		return EffectiveGrant{}, ownGrantErr(err)
	}
	own := EffectiveGrant{Modules: modules, Attributes: attributes}

	groupID, err := grants.GroupOf(ctx, identityID)
	if errors.Is(err, ErrRecordNotFound) {
		return own, nil
	}
	if err != nil {
		return EffectiveGrant{}, fmt.Errorf("load group: %w", err)
	}

	groupModules, modErr := grants.GroupModules(ctx, groupID)
	if modErr != nil && !errors.Is(modErr, ErrRecordNotFound) {
		return EffectiveGrant{}, fmt.Errorf("load group modules: %w", modErr)
	}
	groupAttributes, attrErr := grants.GroupAttributes(ctx, groupID)
	if attrErr != nil && !errors.Is(attrErr, ErrRecordNotFound) {
		return EffectiveGrant{}, fmt.Errorf("load group attributes: %w", attrErr)
	}

	switch {
	case modErr != nil:
		return EffectiveGrant{}, &Error{Kind: KindInternal, Message: msgGroupNoModules, Err: modErr}
	case attrErr != nil:
		return EffectiveGrant{}, &Error{Kind: KindInternal, Message: msgGroupNoAttributes, Err: attrErr}
	}

	return Merge(own, &EffectiveGrant{Modules: groupModules, Attributes: groupAttributes}), nil
}

func ownGrantErr(err error) error {
	if errors.Is(err, ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: msgNotRegistered, Err: err}
	}
	return fmt.Errorf("load grants: %w", err)
}

// Scope is the surface a use case is invoked from.
type Scope uint8

const (
	ScopeStandard Scope = iota
	ScopeManagement
)

func (s Scope) String() string {
	if s == ScopeManagement {
		return "management"
	}
	return "standard"
}

// Authorize applies the scope's gate to an effective grant.
func (s Scope) Authorize(g EffectiveGrant) error {
	if s == ScopeManagement && !g.Modules.Privileged() {
		return newError(KindForbidden, msgNoManagementAccess)
	}
	return nil
}

// resolveFor is the single grant routine behind every use case that returns
// an AuthResult.
func resolveFor(ctx context.Context, tx Tx, identityID int64, scope Scope) (EffectiveGrant, error) {
	grant, err := Resolve(ctx, tx.Grants(), identityID)
	if err != nil {
		return EffectiveGrant{}, err
	}
	if err := scope.Authorize(grant); err != nil {
		return EffectiveGrant{}, err
	}
	return grant, nil
}
