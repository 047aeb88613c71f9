package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/netman-app/authkit/pkg/jwt"
)

// MockMailer is a mock implementation of ActivationMailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendActivationMail(ctx context.Context, to, link string) error {
	args := m.Called(ctx, to, link)
	return args.Error(0)
}

// MockRecorder is a mock implementation of Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Observe(operation, outcome string, d time.Duration) {
	m.Called(operation, outcome, d)
}

// MockOAuthProvider is a mock implementation of OAuthProvider.
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) Type() ProviderType { return ProviderOAuth2 }

func (m *MockOAuthProvider) Authenticate(ctx context.Context, identity Identity, secret string) error {
	args := m.Called(ctx, identity, secret)
	return args.Error(0)
}

func (m *MockOAuthProvider) ValidateAccessToken(ctx context.Context, token string) (Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(Principal), args.Error(1)
}

func (m *MockOAuthProvider) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockOAuthProvider) RevokeToken(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

func (m *MockOAuthProvider) AuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (Tokens, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(Tokens), args.Error(1)
}

// MockStateStore is a mock implementation of StateStore.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	args := m.Called(ctx, state, ttl)
	return args.Error(0)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (bool, error) {
	args := m.Called(ctx, state)
	return args.Bool(0), args.Error(1)
}

const testClientURL = "https://netman.test"

func newTestIssuer(t *testing.T) *jwt.Issuer {
	t.Helper()
	iss, err := jwt.NewIssuer(jwt.Config{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		Issuer:        "authkit",
	})
	require.NoError(t, err)
	return iss
}

type testEnv struct {
	svc    *Service
	store  *memStore
	issuer *jwt.Issuer
	mailer *MockMailer
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		store:  newMemStore(),
		issuer: newTestIssuer(t),
		mailer: &MockMailer{},
	}
	opts = append([]Option{WithConfig(Config{ClientURL: testClientURL, BcryptCost: bcrypt.MinCost})}, opts...)
	env.svc = New(env.store, env.issuer, env.mailer, opts...)
	return env
}

// seedLocal stores a fully registered local identity with the given grants
// and returns its id.
func (e *testEnv) seedLocal(t *testing.T, email, password string, modules ModuleGrant, attributes AttributeGrant) int64 {
	t.Helper()
	hash, err := e.svc.local.HashPassword(password)
	require.NoError(t, err)
	return e.seedIdentity(email, hash, ProviderLocal, modules, attributes)
}

func (e *testEnv) seedIdentity(email, hash string, provider ProviderType, modules ModuleGrant, attributes AttributeGrant) int64 {
	var id int64
	e.store.seed(func(d *memData) {
		d.nextID++
		id = d.nextID
		d.identities[id] = Identity{ID: id, Email: email, PasswordHash: hash}
		d.bindings[id] = provider
		d.modules[id] = modules
		d.attributes[id] = attributes
	})
	return id
}

func (e *testEnv) seedSession(id int64, access, refresh string) {
	e.store.seed(func(d *memData) {
		d.sessions[id] = Session{IdentityID: id, AccessToken: access, RefreshToken: refresh}
	})
}

func (e *testEnv) seedGroup(id, groupID int64, modules *ModuleGrant, attributes *AttributeGrant) {
	e.store.seed(func(d *memData) {
		d.groupOf[id] = groupID
		if modules != nil {
			d.groupModules[groupID] = *modules
		}
		if attributes != nil {
			d.groupAttributes[groupID] = *attributes
		}
	})
}
