package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsight/backend/internal/domain"
)

func snapshot(records int) *domain.Snapshot {
	return &domain.Snapshot{
		Interactions:      domain.NewInteractionMatrix(nil),
		ProductSimilarity: domain.NewSimilarityMatrix[string](nil),
		UserSimilarity:    domain.NewSimilarityMatrix[int64](nil),
		ProcessedAt:       time.Now(),
		RecordCount:       records,
	}
}

func TestMemoryStoreEmpty(t *testing.T) {
	store := NewMemoryStore()

	current, err := store.Current()
	assert.Nil(t, current)
	assert.True(t, errors.Is(err, domain.ErrStateNotReady))
}

func TestMemoryStoreReplace(t *testing.T) {
	store := NewMemoryStore()

	first := snapshot(10)
	store.Replace(first)

	current, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)

	second := snapshot(20)
	store.Replace(second)

	current, err = store.Current()
	require.NoError(t, err)
	assert.Same(t, second, current)
	assert.Equal(t, 20, current.RecordCount)
}

func TestMemoryStoreConcurrentReaders(t *testing.T) {
	store := NewMemoryStore()
	store.Replace(snapshot(1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				current, err := store.Current()
				if !assert.NoError(t, err) {
					return
				}
				// A snapshot is all-or-nothing: every artifact is set.
				assert.NotNil(t, current.Interactions)
				assert.NotNil(t, current.ProductSimilarity)
				assert.NotNil(t, current.UserSimilarity)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Replace(snapshot(n*100 + j))
			}
		}(i)
	}
	wg.Wait()
}
