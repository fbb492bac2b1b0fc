package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain/intent"
)

func pendingSale() *intent.Conversation {
	amount := decimal.RequireFromString("59.70")
	qty := int64(3)
	pid := int64(7)
	return &intent.Conversation{
		ID: uuid.New(),
		Pending: &intent.Envelope{
			Intent: intent.RegisterSale,
			Status: intent.StatusComplete,
			Data:   intent.Data{Amount: &amount, Quantity: &qty, ProductID: &pid},
		},
		UpdatedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func assertRoundTrip(t *testing.T, store ports.ConversationStore) {
	t.Helper()
	ctx := context.Background()
	conv := pendingSale()
	require.NoError(t, store.Save(ctx, conv))

	got, err := store.Get(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Pending)
	assert.Equal(t, intent.RegisterSale, got.Pending.Intent)
	assert.True(t, got.Pending.Data.Amount.Equal(decimal.RequireFromString("59.70")))
	assert.Equal(t, int64(3), *got.Pending.Data.Quantity)
	assert.True(t, conv.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, store.Delete(ctx, conv.ID))
	_, err = store.Get(ctx, conv.ID)
	assert.ErrorIs(t, err, ports.ErrConversationNotFound)
}

// ── MemoryStore ───────────────────────────────────────────────────────────────

func TestMemoryStore_RoundTrip(t *testing.T) {
	assertRoundTrip(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_CopiaIndependiente(t *testing.T) {
	store := NewMemoryStore(0)
	conv := pendingSale()
	require.NoError(t, store.Save(context.Background(), conv))

	conv.Pending.Intent = intent.SaveTransaction
	got, err := store.Get(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Equal(t, intent.RegisterSale, got.Pending.Intent)
}

func TestMemoryStore_Expira(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(30 * time.Minute)
	store.now = func() time.Time { return now }

	conv := pendingSale()
	require.NoError(t, store.Save(context.Background(), conv))

	now = now.Add(29 * time.Minute)
	_, err := store.Get(context.Background(), conv.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(context.Background(), conv.ID)
	assert.ErrorIs(t, err, ports.ErrConversationNotFound)
}

// ── RedisStore ────────────────────────────────────────────────────────────────

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	assertRoundTrip(t, store)
}

func TestRedisStore_TTLRenovadoEnSave(t *testing.T) {
	store, mr := newRedisStore(t, 10*time.Minute)
	ctx := context.Background()
	conv := pendingSale()
	key := keyPrefix + conv.ID.String()

	require.NoError(t, store.Save(ctx, conv))
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	mr.FastForward(8 * time.Minute)
	require.NoError(t, store.Save(ctx, conv))
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	mr.FastForward(11 * time.Minute)
	_, err := store.Get(ctx, conv.ID)
	assert.ErrorIs(t, err, ports.ErrConversationNotFound)
}

func TestRedisStore_ValorCorrupto(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	id := uuid.New()
	require.NoError(t, mr.Set(keyPrefix+id.String(), "{no-json"))

	_, err := store.Get(context.Background(), id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrConversationNotFound)
}

func TestRedisStore_ServidorCaido(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	mr.Close()

	err := store.Save(context.Background(), pendingSale())
	assert.Error(t, err)
}
