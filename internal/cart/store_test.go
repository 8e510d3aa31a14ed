package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c := Cart{1: 2, 7: 5}
	require.NoError(t, s.Save(ctx, 42, c))

	loaded, err := s.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestMemoryStoreMissingTenantIsEmpty(t *testing.T) {
	s := NewMemoryStore()
	loaded, err := s.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestMemoryStoreTenantsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, 1, Cart{1: 1}))
	require.NoError(t, s.Save(ctx, 2, Cart{1: 9}))

	a, err := s.Load(ctx, 1)
	require.NoError(t, err)
	b, err := s.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, Cart{1: 1}, a)
	assert.Equal(t, Cart{1: 9}, b)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, 3, Cart{5: 2}))
	require.NoError(t, s.Clear(ctx, 3))

	loaded, err := s.Load(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCorruptPayloadLoadsAsEmptyCart(t *testing.T) {
	s := NewMemoryStore()
	s.entries[StorageKey(9)] = []byte("{not json")

	loaded, err := s.Load(context.Background(), 9)
	require.NoError(t, err, "corrupt data is swallowed, never surfaced")
	assert.Empty(t, loaded)
}

func TestDecodeDropsNonPositiveQuantities(t *testing.T) {
	c := Decode([]byte(`{"1": 2, "2": 0, "3": -4}`))
	assert.Equal(t, Cart{1: 2}, c)

	assert.Empty(t, Decode([]byte(`null`)))
	assert.Empty(t, Decode(nil))
}

func TestStorageKeyIsTenantScoped(t *testing.T) {
	assert.Equal(t, "fa_cart_7", StorageKey(7))
	assert.NotEqual(t, StorageKey(1), StorageKey(2))
}
