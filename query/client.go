package query

import (
	"context"
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// RunInsert encodes ins and hands it to the host.
func RunInsert(ctx context.Context, exec ports.QueryExecutor, ins Insert) error {
	data, err := wireformat.Marshal(ins)
	if err != nil {
		return fmt.Errorf("encode insert: %w", err)
	}
	return exec.Insert(ctx, data)
}

// Run executes q on the host. found is false when the query matched nothing,
// in which case no result is fetched.
func Run(ctx context.Context, exec ports.QueryExecutor, q Query) (result []byte, found bool, err error) {
	data, err := wireformat.Marshal(q)
	if err != nil {
		return nil, false, fmt.Errorf("encode query: %w", err)
	}
	length, handle, err := exec.RunQuery(ctx, data)
	if err != nil {
		return nil, false, err
	}
	if length == 0 {
		return nil, false, nil
	}
	result, err = exec.FetchQueryResult(ctx, handle)
	if err != nil {
		return nil, false, err
	}
	if uint32(len(result)) != length { //nolint:gosec // G115: compared, not converted back
		return nil, false, fmt.Errorf("query result is %d bytes, host announced %d", len(result), length)
	}
	return result, true, nil
}

// RunRows executes q and decodes the result as reference engine rows.
func RunRows(ctx context.Context, exec ports.QueryExecutor, q Query) (Rows, error) {
	result, found, err := Run(ctx, exec, q)
	if err != nil || !found {
		return nil, err
	}
	return DecodeRows(result)
}
