// Package auth is the authentication core of authkit.
//
// It signs identities in through two providers, the local password provider
// and Google OAuth2, keeps exactly one token pair per identity, and computes
// each identity's effective grant by OR-merging its own module and attribute
// flags with those of its group.
//
// Service is the orchestrator. Each use case (Register, SignIn,
// ManagementSignIn, Refresh, ManagementRefresh, Logout, Activate,
// Authenticate, OAuthSignIn) runs inside one Store transaction and either
// commits every write or none of them. Failures are returned as *Error values
// whose Kind survives wrapping; mapping a Kind to a transport status is left
// to the caller.
//
// Concurrent use cases for the same identity are serialized through
// Tx.LockIdentity, so a Logout cannot be undone by a Sign-in that read the
// session row before the Logout committed.
package auth
