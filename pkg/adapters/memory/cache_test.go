package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/decompose/pkg/adapters/memory"
	"github.com/aretw0/decompose/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Contract(t *testing.T) {
	ports.RunDisambiguationCacheContract(t, memory.NewCache())
}

func TestMemoryCache_Isolation(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()

	in := []string{"The box is in the kitchen."}
	require.NoError(t, cache.Put(ctx, "k", in))
	in[0] = "mutated"

	out, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "The box is in the kitchen.", out[0])

	out[0] = "mutated again"
	again, _ := cache.Get(ctx, "k")
	assert.Equal(t, "The box is in the kitchen.", again[0])
	assert.Equal(t, 1, cache.Len())
}
