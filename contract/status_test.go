package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want uint32
	}{
		{name: "success", err: nil, want: StatusOK},
		{name: "unknown function", err: &CallError{Kind: InvalidFunctionName}, want: 2},
		{name: "wrapped call error", err: fmt.Errorf("serve: %w", &CallError{Kind: HandlerFailed}), want: 4},
		{name: "already constructed", err: &CallError{Kind: AlreadyConstructed}, want: 8},
		{name: "host failure", err: errors.New("fetch call input: link down"), want: StatusHostFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitStatus(tt.err))
		})
	}
}

func TestErrorFromStatus(t *testing.T) {
	assert.NoError(t, ErrorFromStatus(StatusOK))

	for kind := DeserializeError; kind <= AlreadyConstructed; kind++ {
		err := ErrorFromStatus(ExitStatus(&CallError{Kind: kind}))
		require.Error(t, err)
		assert.True(t, IsKind(err, kind), kind.String())
	}

	err := ErrorFromStatus(StatusHostFailure)
	require.Error(t, err)
	var ce *CallError
	assert.False(t, errors.As(err, &ce))
	assert.Contains(t, err.Error(), "255")
}
