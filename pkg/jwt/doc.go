// Package jwt issues and verifies the token pairs of locally authenticated
// identities.
//
// An Issuer holds two independent HMAC secrets. Access tokens are signed
// with the access secret and live for an hour by default; refresh tokens are
// signed with the refresh secret and live for thirty days. Verification only
// checks signature, algorithm and expiry and never consults storage, so a
// revoked pair has to be rejected by the caller by comparing against the
// persisted session.
//
// # Usage
//
//	issuer, err := jwt.NewIssuer(cfg.JWT)
//	if err != nil {
//	    return err
//	}
//
//	pair, err := issuer.Issue(userID)
//	// pair.AccessToken, pair.RefreshToken
//
//	claims, err := issuer.VerifyAccess(pair.AccessToken)
//	// claims.UserID == userID
//
//	access, err := issuer.IssueAccess(claims.UserID)
//
// Tests can pin time with WithClock.
//
// # Errors
//
// NewIssuer validates its Config: both secrets are required and must differ,
// zero TTLs take the defaults above and negative ones are rejected. Every verification failure is reported as
// ErrInvalidToken; callers cannot and should not distinguish expired from
// forged tokens.
package jwt
