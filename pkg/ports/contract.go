package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/decompose/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDisambiguationCacheContract runs a suite of tests to verify that a
// DisambiguationCache implementation adheres to the interface contract.
func RunDisambiguationCacheContract(t *testing.T, cache DisambiguationCache) {
	ctx := context.Background()
	key := "contract-test-story-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		sentences := []string{
			"The green_box is in the kitchen.",
			"The red_crate is in the garden.",
		}

		err := cache.Put(ctx, key, sentences)
		require.NoError(t, err, "Put should not return error")

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, sentences, loaded, "order must be preserved")
	})

	t.Run("Get Unknown", func(t *testing.T) {
		_, err := cache.Get(ctx, "unknown-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Empty Value Is A Hit", func(t *testing.T) {
		emptyKey := key + "-empty"
		require.NoError(t, cache.Put(ctx, emptyKey, []string{}))

		loaded, err := cache.Get(ctx, emptyKey)
		require.NoError(t, err, "an empty result must still be cached")
		assert.Empty(t, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		overwriteKey := key + "-overwrite"
		require.NoError(t, cache.Put(ctx, overwriteKey, []string{"The a is in the b."}))
		require.NoError(t, cache.Put(ctx, overwriteKey, []string{"The c is in the d."}))

		loaded, err := cache.Get(ctx, overwriteKey)
		require.NoError(t, err)
		assert.Equal(t, []string{"The c is in the d."}, loaded)
	})
}
