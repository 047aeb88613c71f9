package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/netman-app/authkit/pkg/logger"
)

// Service runs the authentication use cases.
type Service struct {
	store     Store
	issuer    TokenIssuer
	local     *LocalProvider
	providers providers
	mailer    ActivationMailer
	states    StateStore
	metrics   Recorder
	log       *slog.Logger

	clientURL  string
	bcryptCost int
	stateTTL   time.Duration
	now        func() time.Time
	newLink    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConfig applies the client URL, bcrypt cost and OAuth state TTL.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.clientURL = strings.TrimRight(cfg.ClientURL, "/")
		if cfg.BcryptCost > 0 {
			s.bcryptCost = cfg.BcryptCost
		}
		if cfg.StateTTL > 0 {
			s.stateTTL = cfg.StateTTL
		}
	}
}

// WithOAuthProvider enables the OAuth2 provider.
func WithOAuthProvider(p OAuthProvider) Option {
	return func(s *Service) {
		s.providers[p.Type()] = p
	}
}

// WithStateStore sets the store for OAuth2 state values. Required by
// OAuthURL and OAuthSignIn.
func WithStateStore(st StateStore) Option {
	return func(s *Service) {
		s.states = st
	}
}

// WithMetrics sets the use case recorder.
func WithMetrics(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLinkGenerator overrides the activation link generator.
func WithLinkGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newLink = fn
	}
}

// New constructs a Service. The local provider is always enabled.
func New(store Store, issuer TokenIssuer, mailer ActivationMailer, opts ...Option) *Service {
	s := &Service{
		store:      store,
		issuer:     issuer,
		providers:  providers{},
		mailer:     mailer,
		metrics:    noopRecorder{},
		log:        logger.Discard(),
		bcryptCost: DefaultBcryptCost,
		stateTTL:   10 * time.Minute,
		now:        time.Now,
		newLink:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.local = NewLocalProvider(issuer, s.bcryptCost)
	s.providers[ProviderLocal] = s.local
	return s
}

// track runs fn as the use case op, classifies its error and reports the
// outcome. uid is read after fn returns, so use cases may fill it in.
func (s *Service) track(ctx context.Context, op string, uid *int64, fn func() error) error {
	start := s.now()
	err := classify(fn())
	d := s.now().Sub(start)

	s.metrics.Observe(op, outcome(err), d)

	attrs := []any{logger.Component("auth"), logger.Operation(op), logger.Duration(d)}
	if uid != nil && *uid != 0 {
		attrs = append(attrs, logger.UserID(*uid))
	}
	if err == nil {
		s.log.DebugContext(ctx, "auth operation completed", attrs...)
		return nil
	}

	kind := KindOf(err)
	attrs = append(attrs, logger.Kind(kind.String()), logger.Error(err))
	if kind == KindInternal || kind == KindUnavailable {
		s.log.ErrorContext(ctx, "auth operation failed", attrs...)
	} else {
		s.log.WarnContext(ctx, "auth operation rejected", attrs...)
	}
	return err
}

// inTx runs fn inside one store transaction as the use case op.
func (s *Service) inTx(ctx context.Context, op string, uid *int64, fn func(tx Tx) error) error {
	return s.track(ctx, op, uid, func() error {
		return s.store.InTx(ctx, fn)
	})
}

func (s *Service) activationURL(link string) string {
	return s.clientURL + "/auth/activate/" + link
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issue signs a local token pair and stores it as the identity's session.
func (s *Service) issue(ctx context.Context, tx Tx, identityID int64) (Tokens, error) {
	pair, err := s.issuer.Issue(identityID)
	if err != nil {
		return Tokens{}, fmt.Errorf("issue tokens: %w", err)
	}
	tokens := Tokens{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	if err := NewSessions(tx.Sessions()).Save(ctx, identityID, tokens); err != nil {
		return Tokens{}, err
	}
	return tokens, nil
}
