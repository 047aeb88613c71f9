// Package binder decodes HTTP request data into typed request structs.
//
//	r.Post("/sign-in", handler.Wrap(signIn,
//		handler.WithBinders[handler.Context, signInRequest](binder.JSON()),
//	))
//
// Bodies are limited to DefaultMaxJSONSize bytes and must contain exactly
// one JSON value. Binders that do not apply to a request return
// ErrBinderNotApplicable so that the caller can skip them.
package binder
