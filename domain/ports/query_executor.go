package ports

import "context"

// QueryHandleSize is the width of a query correlation handle.
const QueryHandleSize = 16

// QueryHandle correlates a run query with its pending result.
type QueryHandle [QueryHandleSize]byte

// QueryExecutor runs table queries on the host in two phases: RunQuery
// reports the result size and a handle, FetchQueryResult retrieves exactly
// that many bytes.
type QueryExecutor interface {
	// Insert stores an encoded Insert.
	Insert(ctx context.Context, insert []byte) error

	// RunQuery executes an encoded Query. A zero length means no rows and the
	// handle must not be fetched.
	RunQuery(ctx context.Context, query []byte) (length uint32, handle QueryHandle, err error)

	// FetchQueryResult returns and releases the result held under handle.
	// An unknown handle returns errors.ErrMissingKey.
	FetchQueryResult(ctx context.Context, handle QueryHandle) ([]byte, error)
}
