package memo_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dex-api/internal/pkg/memo"
)

func TestMapComputesOnce(t *testing.T) {
	var m memo.Map[int, string]
	calls := 0

	for i := 0; i < 3; i++ {
		v, err := m.Get(7, func() (string, error) {
			calls++
			return "seven", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "seven", v)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Len())
}

func TestMapDoesNotCacheErrors(t *testing.T) {
	var m memo.Map[int, int]
	boom := errors.New("boom")

	_, err := m.Get(1, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Len())

	v, err := m.Get(1, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestMapConcurrentAccess(t *testing.T) {
	var m memo.Map[int, int]
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v, err := m.Get(n%5, func() (int, error) { return (n % 5) * 10, nil })
			assert.NoError(t, err)
			assert.Equal(t, (n%5)*10, v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, m.Len())
}
