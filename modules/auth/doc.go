// Package auth exposes the authentication service over HTTP.
//
// Every route accepts and returns JSON. Successful mutations answer 201;
// failures answer with the envelope {"message": ..., "errors": [...]} and a
// status derived from the service error kind.
//
//	m := authmod.New(svc, authmod.WithLogger(log))
//	r.Mount("/auth", m.Handle())
//
// Routes that need an authenticated caller are wrapped with BearerAuth,
// which expects the header "Authorization: Bearer <type_auth> <access_token>".
package auth
