package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netman-app/authkit/handler"
	"github.com/netman-app/authkit/pkg/binder"
	"github.com/netman-app/authkit/pkg/logger"
	authsvc "github.com/netman-app/authkit/svc/auth"
)

// Service is the part of the authentication service used by the routes.
type Service interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (authsvc.AuthResult, error)
	SignIn(ctx context.Context, in authsvc.SignInInput) (authsvc.AuthResult, error)
	ManagementSignIn(ctx context.Context, in authsvc.SignInInput) (authsvc.AuthResult, error)
	Refresh(ctx context.Context, in authsvc.RefreshInput) (authsvc.AuthResult, error)
	ManagementRefresh(ctx context.Context, in authsvc.RefreshInput) (authsvc.AuthResult, error)
	Logout(ctx context.Context, in authsvc.LogoutInput) (authsvc.Success, error)
	Activate(ctx context.Context, link string) (authsvc.Success, error)
	OAuthURL(ctx context.Context) (string, error)
	OAuthSignIn(ctx context.Context, in authsvc.OAuthSignInInput, scope authsvc.Scope) (authsvc.AuthResult, error)
	Authenticator
}

// Authenticator resolves the principal behind an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, typeAuth authsvc.ProviderType, accessToken string) (authsvc.Principal, error)
}

var _ Service = (*authsvc.Service)(nil)

// Module serves the authentication routes.
type Module struct {
	svc          Service
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// Option configures a Module.
type Option func(*Module)

// WithLogger sets the logger used for failed requests.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// New returns a Module serving svc.
func New(svc Service, opts ...Option) *Module {
	m := &Module{svc: svc, log: logger.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	m.errorHandler = handler.NewErrorHandler(m.log, classify)
	return m
}

// Handle returns the router to be mounted under /auth.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/sign-up", wrap(m, m.signUp))
	r.Post("/sign-in", wrap(m, m.signIn))
	r.Post("/logout", wrap(m, m.logout))
	r.Post("/activate", wrap(m, m.activate))
	r.Post("/refresh/token", wrap(m, m.refresh))

	r.Get("/oauth/url", wrap(m, m.oauthURL))
	r.Post("/oauth/sign-in", wrap(m, m.oauthSignIn))

	r.Route("/management", func(r chi.Router) {
		r.Post("/sign-in", wrap(m, m.managementSignIn))
		r.Post("/logout", wrap(m, m.logout))
		r.Post("/refresh/token", wrap(m, m.managementRefresh))
		r.Post("/oauth/sign-in", wrap(m, m.managementOAuthSignIn))
	})

	r.With(BearerAuth(m.svc, m.errorHandler)).Get("/me", wrap(m, m.me))

	return r
}

func wrap[R any](m *Module, h handler.HandlerFunc[handler.Context, R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binder.JSON()),
		handler.WithErrorHandler[handler.Context, R](m.errorHandler),
	)
}
