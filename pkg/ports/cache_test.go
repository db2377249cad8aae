package ports_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/ports"
	"github.com/stretchr/testify/assert"
)

// MockCache is a map-backed DisambiguationCache for testing the contract itself.
type MockCache struct {
	mu   sync.Mutex
	data map[string][]string
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return append([]string(nil), v...), nil
}

func (m *MockCache) Put(ctx context.Context, key string, sentences []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]string{}, sentences...)
	return nil
}

func TestDisambiguationCache_Contract(t *testing.T) {
	ports.RunDisambiguationCacheContract(t, NewMockCache())
}

func TestOracleFunc(t *testing.T) {
	var got string
	oracle := ports.OracleFunc(func(ctx context.Context, prompt string) (string, error) {
		got = prompt
		return "Answer: yes", nil
	})

	resp, err := oracle.Respond(context.Background(), "Does Alice know?")
	assert.NoError(t, err)
	assert.Equal(t, "Answer: yes", resp)
	assert.Equal(t, "Does Alice know?", got)
}
