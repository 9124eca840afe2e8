package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/exclusion"
	"github.com/MrJamesThe3rd/ledger/internal/exclusion/memory"
)

var _ exclusion.Repository = (*memory.Store)(nil)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	added, err := s.Add(ctx, "a", "tx1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(ctx, "a", "tx1")
	require.NoError(t, err)
	assert.False(t, added)

	ok, err := s.Contains(ctx, "a", "tx1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Contains(ctx, "b", "tx1")
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := s.Remove(ctx, "a", "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = s.Remove(ctx, "a", "tx1")
	require.NoError(t, err)
	assert.True(t, removed)

	ids, err := s.List(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	for _, id := range []string{"x", "y", "z"} {
		_, err := s.Add(ctx, "a", id)
		require.NoError(t, err)
	}

	_, err := s.Add(ctx, "b", "x")
	require.NoError(t, err)

	n, err := s.Clear(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.Clear(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, n)

	ids, err := s.List(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			_, _ = s.Add(ctx, "a", fmt.Sprint(i))
		})
	}

	wg.Wait()

	ids, err := s.List(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, ids, 50)
}
