package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saydulla27/foodapp-frontend/internal/cart"
)

func TestManager(t *testing.T) {
	m := NewManager()

	f, err := NewFlow(context.Background(), testCompany(), testMenu(), cart.NewMemoryStore(), &fakeSubmitter{}, "")
	require.NoError(t, err)

	id := m.Put(f)
	require.NotEmpty(t, id)

	got, ok := m.Get(id)
	assert.True(t, ok)
	assert.Same(t, f, got)

	id2 := m.Put(f)
	assert.NotEqual(t, id, id2)

	m.Delete(id)
	_, ok = m.Get(id)
	assert.False(t, ok)
}
