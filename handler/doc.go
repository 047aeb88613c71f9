// Package handler turns typed request handlers into http.HandlerFunc values
// for JSON APIs.
//
// A handler receives a Context and an already bound request value and
// returns a Response. Binding and rendering failures, as well as error
// responses returned by the handler itself, are passed to an ErrorHandler
// which writes the JSON error envelope:
//
//	{"message": "...", "errors": [{"type": "field", "value": "...", "msg": "...", "path": "email", "location": "body"}]}
//
// # Usage
//
//	type signInRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	func signIn(ctx handler.Context, req signInRequest) handler.Response {
//		res, err := svc.SignIn(ctx, auth.SignInInput{Email: req.Email, Password: req.Password})
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.Created(res)
//	}
//
//	r.Post("/sign-in", handler.Wrap(signIn,
//		handler.WithBinders[handler.Context, signInRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, signInRequest](errorHandler),
//	))
//
// Decorators wrap a HandlerFunc for cross-cutting concerns and are applied
// in order, the first one being the outermost.
package handler
