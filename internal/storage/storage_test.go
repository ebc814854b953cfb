package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "a", "2"))

	v, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, m.Remove(ctx, "a"))
	require.NoError(t, m.Remove(ctx, "a"))
	_, ok, _ = m.Get(ctx, "a")
	assert.False(t, ok)
}

func TestMemory_KeysPrefixSorted(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, k := range []string{"p:b", "p:a", "q:a", "p:c"} {
		require.NoError(t, m.Set(ctx, k, "x"))
	}

	keys, err := m.Keys(ctx, "p:")
	require.NoError(t, err)
	assert.Equal(t, []string{"p:a", "p:b", "p:c"}, keys)

	all, err := m.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%02d", i)
			_ = m.Set(ctx, key, "v")
			_, _, _ = m.Get(ctx, key)
			_, _ = m.Keys(ctx, "k")
		}(i)
	}
	wg.Wait()

	keys, err := m.Keys(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, keys, 20)
}
