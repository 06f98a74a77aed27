package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if _, ok := m.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = value.(string)
	m.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func TestClient_SetNXYGet(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	c := &Client{store: mock}

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, redis.Nil)

	ok, err := c.SetNX(ctx, "k", "v1", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "k", "v2", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, time.Hour, mock.ttls["k"])
	assert.NoError(t, c.Ping(ctx))
}

func TestClient_IdempotencyKey(t *testing.T) {
	c := &Client{}
	assert.Equal(t, "taller:idempotency:user-1|POST|/api/inventory/movements:abc",
		c.IdempotencyKey("user-1|POST|/api/inventory/movements", "abc"))
}

func TestClient_SinInicializar(t *testing.T) {
	c := &Client{}
	_, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NoError(t, c.Close())
}

func TestNew_URLVacia(t *testing.T) {
	_, err := New(context.Background(), " ")
	assert.Error(t, err)
}
