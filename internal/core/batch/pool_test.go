package batch

import (
	"context"
	"fmt"
	"testing"

	"recipe-ingest/internal/core/ingredient"
	"recipe-ingest/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolParseLinesMatchesSequential(t *testing.T) {
	lines := []string{
		"For the Dough:",
		"3 cups bread flour",
		"",
		"1 packet yeast",
		"1 1/2 cups warm water",
		"SAUCE",
		"1 (28 oz) can crushed tomatoes",
		"2 cloves garlic, minced",
		"[Topping] 8 oz mozzarella, shredded",
		"Salt and pepper, to taste",
	}
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("%d tbsp olive oil", i+1))
	}

	pool := NewPool(nil, Options{Workers: 3, QueueSize: 2, ChunkSize: 4})
	defer pool.Close()

	got, err := pool.ParseLines(context.Background(), lines)
	require.NoError(t, err)
	assert.Equal(t, ingredient.ParseLines(lines), got)
	assert.Equal(t, int64(len(got)), pool.Status().ProcessedCount)
}

func TestPoolEmptyInput(t *testing.T) {
	pool := NewPool(nil, Options{})
	defer pool.Close()

	got, err := pool.ParseLines(context.Background(), []string{"", "  "})
	require.NoError(t, err)
	assert.Empty(t, got)

	status := pool.Status()
	assert.Equal(t, 4, status.Workers)
	assert.Equal(t, 64, status.MaxQueueSize)
}

func TestPoolCancelledContext(t *testing.T) {
	pool := NewPool(nil, Options{Workers: 1, QueueSize: 1, ChunkSize: 1})
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.ParseLines(ctx, []string{"1 cup sugar", "2 eggs", "1 tsp salt"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPoolClosed(t *testing.T) {
	pool := NewPool(nil, Options{Workers: 1})
	pool.Close()
	pool.Close()

	_, err := pool.ParseLines(context.Background(), []string{"1 cup sugar"})
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}
