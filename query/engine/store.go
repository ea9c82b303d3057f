package engine

import (
	"context"
	"sync"
)

// Store persists encoded rows per table.
type Store interface {
	AppendRow(ctx context.Context, table string, row []byte) error
	ScanRows(ctx context.Context, table string) ([][]byte, error)
}

// MemStore is an in-memory Store. An unknown table scans as empty.
type MemStore struct {
	mu     sync.RWMutex
	tables map[string][][]byte
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string][][]byte)}
}

// AppendRow implements Store.
func (s *MemStore) AppendRow(_ context.Context, table string, row []byte) error {
	cp := make([]byte, len(row))
	copy(cp, row)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], cp)
	return nil
}

// ScanRows implements Store.
func (s *MemStore) ScanRows(_ context.Context, table string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.tables[table]
	out := make([][]byte, len(rows))
	copy(out, rows)
	return out, nil
}
