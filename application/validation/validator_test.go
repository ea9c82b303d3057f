package validation_test

import (
	"testing"

	"github.com/reglet-dev/contract-sdk/application/validation"
	"github.com/reglet-dev/contract-sdk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbiValidator_Validate(t *testing.T) {
	v, err := validation.NewAbiValidator()
	require.NoError(t, err)

	t.Run("valid description", func(t *testing.T) {
		res, err := v.Validate([]byte(testutil.EchoDescription))
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing functions",
			doc:   `{"contract":"echo"}`,
			field: "",
		},
		{
			name:  "unknown kind",
			doc:   `{"functions":[{"name":"f","type":"view","inputs":[],"outputs":[]}]}`,
			field: "/functions/0/type",
		},
		{
			name:  "parameter without type",
			doc:   `{"functions":[{"name":"f","type":"function","inputs":[{"name":"a"}],"outputs":[]}]}`,
			field: "/functions/0/inputs/0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.Validate([]byte(tt.doc))
			require.NoError(t, err)
			assert.False(t, res.Valid)
			require.NotEmpty(t, res.Errors)
			fields := make([]string, 0, len(res.Errors))
			for _, e := range res.Errors {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.NotEmpty(t, res.String())
		})
	}

	t.Run("not json", func(t *testing.T) {
		_, err := v.Validate([]byte("contract: echo"))
		assert.Error(t, err)
	})
}
