package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis answers SET and GETDEL from memory through a process hook, so
// no server is dialed.
type fakeRedis struct {
	data map[string]string
	args [][]any
	err  error
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeRedis) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		f.args = append(f.args, cmd.Args())
		if f.err != nil {
			cmd.SetErr(f.err)
			return f.err
		}

		key, _ := cmd.Args()[1].(string)
		switch c := cmd.(type) {
		case *redis.StatusCmd:
			f.data[key], _ = c.Args()[2].(string)
			c.SetVal("OK")
		case *redis.StringCmd:
			v, ok := f.data[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			delete(f.data, key)
			c.SetVal(v)
		}
		return nil
	}
}

func newFakeRedisClient(t *testing.T) (*redis.Client, *fakeRedis) {
	t.Helper()
	fake := &fakeRedis{data: map[string]string{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(fake)
	t.Cleanup(func() { _ = client.Close() })
	return client, fake
}

func TestRedisStateStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("state is single use", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeRedisClient(t)
		store := NewRedisStateStore(client)

		require.NoError(t, store.Save(ctx, "abc", 10*time.Minute))
		assert.Equal(t, []any{"set", stateKeyPrefix + "abc", "1", "ex", int64(600)}, fake.args[0])

		ok, err := store.Consume(ctx, "abc")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Consume(ctx, "abc")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("redis failures propagate", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeRedisClient(t)
		fake.err = errors.New("connection refused")
		store := NewRedisStateStore(client)

		assert.Error(t, store.Save(ctx, "abc", time.Minute))
		_, err := store.Consume(ctx, "abc")
		assert.Error(t, err)
	})
}

func TestGenerateState(t *testing.T) {
	t.Parallel()

	a, err := generateState()
	require.NoError(t, err)
	b, err := generateState()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
