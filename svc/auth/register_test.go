package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:        "a@x.com",
		Password:     "secret1",
		Nickname:     "nick",
		Name:         "Ivan",
		Surname:      "Petrov",
		PhoneNum:     "+79991234567",
		Location:     "Moscow",
		DateBirthday: time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func assertNothingPersisted(t *testing.T, d *memData) {
	t.Helper()
	assert.Empty(t, d.identities)
	assert.Empty(t, d.bindings)
	assert.Empty(t, d.profiles)
	assert.Empty(t, d.modules)
	assert.Empty(t, d.attributes)
	assert.Empty(t, d.roles)
	assert.Empty(t, d.players)
	assert.Empty(t, d.activations)
	assert.Empty(t, d.sessions)
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	linkGen := WithLinkGenerator(func() string { return "0b7e3c4e-1f7a-4d2b-9a55-8f1c2d3e4f50" })
	activationURL := testClientURL + "/auth/activate/0b7e3c4e-1f7a-4d2b-9a55-8f1c2d3e4f50"

	t.Run("creates identity with default grants", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, linkGen)
		env.mailer.On("SendActivationMail", mock.Anything, "a@x.com", activationURL).Return(nil).Once()

		res, err := env.svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		assert.Equal(t, ProviderLocal, res.TypeAuth)
		assert.Contains(t, env.store.locks, res.UserID)
		assert.Equal(t, ModuleGrant{Player: true}, res.Modules)
		assert.Equal(t, AttributeGrant{Read: true}, res.Attributes)

		claims, err := env.issuer.VerifyRefresh(res.Tokens.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, res.UserID, claims.UserID)

		d := env.store.snapshot()
		require.Len(t, d.identities, 1)
		identity := d.identities[res.UserID]
		assert.Equal(t, "a@x.com", identity.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte("secret1")))

		assert.Equal(t, ProviderLocal, d.bindings[res.UserID])
		assert.Equal(t, ModuleGrant{Player: true}, d.modules[res.UserID])
		assert.Equal(t, AttributeGrant{Read: true}, d.attributes[res.UserID])
		assert.Equal(t, RolePlayer, d.roles[res.UserID])
		assert.True(t, d.players[res.UserID])
		assert.Equal(t, "nick", d.profiles[res.UserID].Nickname)
		assert.Equal(t, ActivationTicket{
			IdentityID: res.UserID,
			Link:       "0b7e3c4e-1f7a-4d2b-9a55-8f1c2d3e4f50",
		}, d.activations["0b7e3c4e-1f7a-4d2b-9a55-8f1c2d3e4f50"])

		require.Len(t, d.sessions, 1)
		assert.Equal(t, Session{
			IdentityID:   res.UserID,
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
		}, d.sessions[res.UserID])

		env.mailer.AssertExpectations(t)
	})

	t.Run("rejects taken email nickname and phone in that order", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		id := env.seedIdentity("a@x.com", "", ProviderLocal, DefaultModuleGrant(), DefaultAttributeGrant())
		env.store.seed(func(d *memData) {
			d.profiles[id] = Profile{Nickname: "nick", PhoneNum: "+79991234567"}
		})

		in := validRegisterInput()
		_, err := env.svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrBadRequest)
		assert.EqualError(t, err, "Пользователь с почтовым адресом a@x.com уже существует")

		in.Email = "b@x.com"
		_, err = env.svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrBadRequest)
		assert.EqualError(t, err, "Пользователь с никнеймом nick уже существует")

		in.Nickname = "other"
		_, err = env.svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrBadRequest)
		assert.EqualError(t, err, msgPhoneTaken)

		env.mailer.AssertNotCalled(t, "SendActivationMail", mock.Anything, mock.Anything, mock.Anything)
		assert.Len(t, env.store.snapshot().identities, 1)
	})

	t.Run("rejects a password bcrypt cannot hash", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		in := validRegisterInput()
		in.Password = strings.Repeat("😀", 20)

		_, err := env.svc.Register(ctx, in)
		require.ErrorIs(t, err, ErrBadRequest)
		require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
		assert.EqualError(t, err, msgPasswordTooLong)

		assertNothingPersisted(t, env.store.snapshot())
		env.mailer.AssertNotCalled(t, "SendActivationMail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rolls back when the profile write fails", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.store.failOn("CreateProfile", errors.New("disk full"))

		_, err := env.svc.Register(ctx, validRegisterInput())
		require.ErrorIs(t, err, ErrInternal)

		assertNothingPersisted(t, env.store.snapshot())
		env.mailer.AssertNotCalled(t, "SendActivationMail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rolls back when the session write fails", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.store.failOn("Upsert", errors.New("disk full"))

		_, err := env.svc.Register(ctx, validRegisterInput())
		require.Error(t, err)

		assertNothingPersisted(t, env.store.snapshot())
		env.mailer.AssertNotCalled(t, "SendActivationMail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rolls back when the activation mail fails", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, linkGen)
		env.mailer.On("SendActivationMail", mock.Anything, "a@x.com", activationURL).
			Return(errors.New("smtp unavailable")).Once()

		_, err := env.svc.Register(ctx, validRegisterInput())
		require.ErrorIs(t, err, ErrInternal)

		assertNothingPersisted(t, env.store.snapshot())
		env.mailer.AssertExpectations(t)
	})

	t.Run("maps a concurrent duplicate to bad request", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.store.failOn("Create", ErrDuplicate)

		_, err := env.svc.Register(ctx, validRegisterInput())
		require.ErrorIs(t, err, ErrBadRequest)
		assert.EqualError(t, err, "Пользователь с почтовым адресом a@x.com уже существует")
	})
}
