package disamb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"

	"github.com/aretw0/decompose/internal/logging"
	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/ports"
	"golang.org/x/sync/singleflight"
)

// Memo computes disambiguation sentences at most once per distinct story.
// It is safe for concurrent use.
type Memo struct {
	cache  ports.DisambiguationCache
	logger *slog.Logger
	group  singleflight.Group
}

// MemoOption configures a Memo.
type MemoOption func(*Memo)

// WithLogger sets the logger used for cache failures.
func WithLogger(logger *slog.Logger) MemoOption {
	return func(m *Memo) {
		m.logger = logger
	}
}

// NewMemo wraps a cache. Cache failures degrade to recomputation.
func NewMemo(cache ports.DisambiguationCache, opts ...MemoOption) *Memo {
	m := &Memo{
		cache:  cache,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the cache key for a story given as units.
func Key(units []string) string {
	sum := sha256.Sum256([]byte(strings.Join(units, "\n")))
	return hex.EncodeToString(sum[:])
}

// Sentences returns the memoized result of Sentences(units).
func (m *Memo) Sentences(ctx context.Context, units []string) ([]string, error) {
	key := Key(units)

	v, err, _ := m.group.Do(key, func() (any, error) {
		cached, err := m.cache.Get(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			m.logger.Warn("disambiguation cache read failed", "key", key, "error", err)
		}

		sentences := Sentences(units)
		if err := m.cache.Put(ctx, key, sentences); err != nil {
			m.logger.Warn("disambiguation cache write failed", "key", key, "error", err)
		}
		return sentences, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string{}, v.([]string)...), nil
}
