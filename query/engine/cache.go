package engine

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// DefaultCacheSize is the number of pending results kept before the oldest is evicted.
const DefaultCacheSize = 256

// ResultCache holds query results between the run and fetch phases.
// It is safe for concurrent use.
type ResultCache struct {
	results *lru.Cache[ports.QueryHandle, []byte]
}

// NewResultCache returns a cache holding at most size pending results.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[ports.QueryHandle, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &ResultCache{results: c}, nil
}

// Put stores result under a fresh random handle.
func (c *ResultCache) Put(result []byte) (ports.QueryHandle, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return ports.QueryHandle{}, fmt.Errorf("generate query handle: %w", err)
	}
	handle := ports.QueryHandle(id)
	c.results.Add(handle, result)
	return handle, nil
}

// Take returns and forgets the result held under handle.
func (c *ResultCache) Take(handle ports.QueryHandle) ([]byte, error) {
	result, ok := c.results.Peek(handle)
	// Only the caller whose Remove found the entry owns the result.
	if !ok || !c.results.Remove(handle) {
		return nil, fmt.Errorf("query handle %s: %w", uuid.UUID(handle), errors.ErrMissingKey)
	}
	return result, nil
}

// Len returns the number of pending results.
func (c *ResultCache) Len() int {
	return c.results.Len()
}
