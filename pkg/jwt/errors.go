package jwt

import "errors"

var (
	ErrInvalidToken      = errors.New("jwt: invalid token")
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrIdenticalSecrets  = errors.New("jwt: access and refresh secrets must differ")
	ErrInvalidTTL        = errors.New("jwt: ttl must be positive")
	ErrInvalidSubject    = errors.New("jwt: identity id must be positive")
	ErrFailedToSignToken = errors.New("jwt: failed to sign token")
)
