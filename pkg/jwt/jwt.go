package jwt

import (
	"errors"
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID int64 `json:"users_id"`
	gojwt.RegisteredClaims
}

// Pair is a freshly issued access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source used for issuing and verification.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// Issuer signs and verifies access and refresh tokens.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewIssuer validates cfg and returns an Issuer.
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, ErrMissingSigningKey
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, ErrIdenticalSecrets
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	if cfg.AccessTTL < 0 || cfg.RefreshTTL < 0 {
		return nil, ErrInvalidTTL
	}

	i := &Issuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue signs a new access/refresh pair for the identity.
func (i *Issuer) Issue(userID int64) (Pair, error) {
	access, err := i.IssueAccess(userID)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.sign(userID, i.refreshSecret, i.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccess signs a new access token only.
func (i *Issuer) IssueAccess(userID int64) (string, error) {
	return i.sign(userID, i.accessSecret, i.accessTTL)
}

// VerifyAccess checks an access token and returns its claims.
func (i *Issuer) VerifyAccess(token string) (Claims, error) {
	return i.verify(token, i.accessSecret)
}

// VerifyRefresh checks a refresh token and returns its claims.
func (i *Issuer) VerifyRefresh(token string) (Claims, error) {
	return i.verify(token, i.refreshSecret)
}

func (i *Issuer) sign(userID int64, secret []byte, ttl time.Duration) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidSubject
	}
	now := i.now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Join(ErrFailedToSignToken, err)
	}
	return signed, nil
}

func (i *Issuer) verify(token string, secret []byte) (Claims, error) {
	if token == "" {
		return Claims{}, ErrInvalidToken
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(i.issuer))
	}

	var claims Claims
	parsed, err := gojwt.ParseWithClaims(token, &claims, func(*gojwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil || !parsed.Valid || claims.UserID <= 0 {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
