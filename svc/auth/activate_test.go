package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Activate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	const link = "6f1d2c3b-4a59-4e8f-b7a6-1c2d3e4f5a6b"

	t.Run("activates and stays activated on repeat", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.store.seed(func(d *memData) {
			d.activations[link] = ActivationTicket{IdentityID: 1, Link: link}
		})

		for range 2 {
			res, err := env.svc.Activate(ctx, link)
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.True(t, env.store.snapshot().activations[link].IsActivated)
		}
	})

	t.Run("unknown link", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, err := env.svc.Activate(ctx, link)
		require.ErrorIs(t, err, ErrBadRequest)
		assert.EqualError(t, err, "По данной ссылке активации аккаунта не обнаружено ни одного пользователя")
	})
}
