package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/query"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Executor runs queries against a Store. It implements ports.QueryExecutor.
type Executor struct {
	store     Store
	cache     *ResultCache
	logger    *slog.Logger
	cacheSize int
	maxDepth  int
}

var _ ports.QueryExecutor = (*Executor)(nil)

// Option configures an Executor.
type Option func(*Executor)

// WithCacheSize bounds the number of results awaiting fetch.
func WithCacheSize(size int) Option {
	return func(e *Executor) {
		e.cacheSize = size
	}
}

// WithMaxDepth sets the filter nesting limit applied when decoding queries.
func WithMaxDepth(depth int) Option {
	return func(e *Executor) {
		e.maxDepth = depth
	}
}

// WithLogger sets the logger used for query diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// New returns an Executor over store.
func New(store Store, opts ...Option) (*Executor, error) {
	e := &Executor{
		store:     store,
		logger:    slog.Default(),
		cacheSize: DefaultCacheSize,
		maxDepth:  query.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	cache, err := NewResultCache(e.cacheSize)
	if err != nil {
		return nil, err
	}
	e.cache = cache
	return e, nil
}

// Insert implements ports.QueryExecutor. The data must be an encoded query.Row.
func (e *Executor) Insert(ctx context.Context, data []byte) error {
	ins, err := query.DecodeInsert(data)
	if err != nil {
		return fmt.Errorf("decode insert: %w", err)
	}
	if _, err := wireformat.Decode[query.Row](ins.Data); err != nil {
		return fmt.Errorf("insert into %s: decode row: %w", ins.Table, err)
	}
	return e.store.AppendRow(ctx, ins.Table, ins.Data)
}

// RunQuery implements ports.QueryExecutor.
func (e *Executor) RunQuery(ctx context.Context, data []byte) (uint32, ports.QueryHandle, error) {
	q, err := query.DecodeQuery(data, wireformat.WithMaxDepth(e.maxDepth))
	if err != nil {
		return 0, ports.QueryHandle{}, fmt.Errorf("decode query: %w", err)
	}
	rows, err := e.Query(ctx, q)
	if err != nil {
		return 0, ports.QueryHandle{}, err
	}
	if len(rows) == 0 {
		return 0, ports.QueryHandle{}, nil
	}

	result, err := wireformat.Marshal(rows)
	if err != nil {
		return 0, ports.QueryHandle{}, fmt.Errorf("encode result: %w", err)
	}
	handle, err := e.cache.Put(result)
	if err != nil {
		return 0, ports.QueryHandle{}, err
	}
	e.logger.DebugContext(ctx, "query result pending",
		slog.String("source", q.Source),
		slog.Int("rows", len(rows)),
		slog.Int("bytes", len(result)),
	)
	return uint32(len(result)), handle, nil //nolint:gosec // G115: results are far below 4GiB
}

// FetchQueryResult implements ports.QueryExecutor.
func (e *Executor) FetchQueryResult(_ context.Context, handle ports.QueryHandle) ([]byte, error) {
	return e.cache.Take(handle)
}

// Query evaluates q against the stored rows of its source table.
func (e *Executor) Query(ctx context.Context, q query.Query) (query.Rows, error) {
	raws, err := e.store.ScanRows(ctx, q.Source)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", q.Source, err)
	}
	rows := make([]query.Row, 0, len(raws))
	for i, raw := range raws {
		row, err := wireformat.Decode[query.Row](raw)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", q.Source, i, err)
		}
		rows = append(rows, row)
	}
	return Apply(rows, q)
}

// Pending returns the number of results awaiting fetch.
func (e *Executor) Pending() int {
	return e.cache.Len()
}
