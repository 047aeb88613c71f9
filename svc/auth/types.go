package auth

import (
	"fmt"
	"time"
)

// ProviderType identifies how an identity authenticates. The numeric values
// are part of the wire format (type_auth).
type ProviderType int

const (
	ProviderLocal  ProviderType = 0
	ProviderOAuth2 ProviderType = 1
)

func (p ProviderType) String() string {
	switch p {
	case ProviderLocal:
		return "local"
	case ProviderOAuth2:
		return "oauth2"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ServiceName is the user-facing name of the service behind the provider.
func (p ProviderType) ServiceName() string {
	switch p {
	case ProviderLocal:
		return "NetMan"
	case ProviderOAuth2:
		return "Google"
	default:
		return p.String()
	}
}

// Valid reports whether p is a known provider.
func (p ProviderType) Valid() bool {
	return p == ProviderLocal || p == ProviderOAuth2
}

// Identity is a registered user account.
type Identity struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile holds the auxiliary user data captured at registration.
type Profile struct {
	Name         string
	Surname      string
	Nickname     string
	PhoneNum     string
	Location     string
	DateBirthday time.Time
	RefImage     string
	DateRegister time.Time
}

// ModuleGrant gates access to the functional areas of the product.
type ModuleGrant struct {
	Player     bool `json:"player"`
	Judge      bool `json:"judge"`
	Creator    bool `json:"creator"`
	Moderator  bool `json:"moderator"`
	Manager    bool `json:"manager"`
	Admin      bool `json:"admin"`
	SuperAdmin bool `json:"super_admin"`
}

// AttributeGrant gates CRUD actions inside granted modules.
type AttributeGrant struct {
	Read   bool `json:"read"`
	Write  bool `json:"write"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// DefaultModuleGrant is assigned to every new identity.
func DefaultModuleGrant() ModuleGrant {
	return ModuleGrant{Player: true}
}

// DefaultAttributeGrant is assigned to every new identity.
func DefaultAttributeGrant() AttributeGrant {
	return AttributeGrant{Read: true}
}

// EffectiveGrant is the per-request union of own and group grants.
type EffectiveGrant struct {
	Modules    ModuleGrant
	Attributes AttributeGrant
}

// ActivationTicket proves control of the registered email.
type ActivationTicket struct {
	IdentityID  int64
	Link        string
	IsActivated bool
}

// Session is the single persisted token pair of an identity.
type Session struct {
	IdentityID   int64
	AccessToken  string
	RefreshToken string
}

// Tokens is the wire representation of a token pair.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is returned by every use case that authenticates an identity.
type AuthResult struct {
	Tokens     Tokens         `json:"tokens"`
	UserID     int64          `json:"users_id"`
	TypeAuth   ProviderType   `json:"type_auth"`
	Modules    ModuleGrant    `json:"modules"`
	Attributes AttributeGrant `json:"attributes"`
}

// Success is returned by Logout and Activate.
type Success struct {
	Success bool `json:"success"`
}

// Principal is the identity behind a verified access token.
type Principal struct {
	UserID   int64        `json:"users_id"`
	Email    string       `json:"email,omitempty"`
	TypeAuth ProviderType `json:"type_auth"`
}

// Role assigned to every newly registered identity.
const RolePlayer = "player"

type RegisterInput struct {
	Email        string
	Password     string
	Nickname     string
	Name         string
	Surname      string
	PhoneNum     string
	Location     string
	DateBirthday time.Time
}

type SignInInput struct {
	Email    string
	Password string
}

type RefreshInput struct {
	RefreshToken string
	TypeAuth     ProviderType
}

type LogoutInput struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
	TypeAuth     ProviderType
}

type OAuthSignInInput struct {
	Code  string
	State string
}

func newAuthResult(id int64, provider ProviderType, tokens Tokens, grant EffectiveGrant) AuthResult {
	return AuthResult{
		Tokens:     tokens,
		UserID:     id,
		TypeAuth:   provider,
		Modules:    grant.Modules,
		Attributes: grant.Attributes,
	}
}
