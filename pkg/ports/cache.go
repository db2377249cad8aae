package ports

import "context"

// DisambiguationCache memoizes disambiguation sentences per story key.
type DisambiguationCache interface {
	// Get returns the cached sentences for key.
	// Returns domain.ErrCacheMiss if the key is unknown.
	Get(ctx context.Context, key string) ([]string, error)

	// Put stores the sentences for key. An empty slice is a valid value.
	Put(ctx context.Context, key string, sentences []string) error
}
