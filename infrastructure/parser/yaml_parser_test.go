package parser_test

import (
	"testing"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/infrastructure/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloYAML = `
contract: hello
sdk_version: 0.1.0
functions:
  - name: hello
    type: readonly
    inputs: []
    outputs:
      - name: returnValue0
        type: uint32
`

func TestYamlAbiParser_Parse(t *testing.T) {
	p := parser.NewYamlAbiParser()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "yaml", doc: helloYAML},
		{name: "json", doc: `{"contract":"hello","sdk_version":"0.1.0","functions":[{"name":"hello","type":"readonly","inputs":[],"outputs":[{"name":"returnValue0","type":"uint32"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := p.Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, "hello", desc.Contract)
			fn, ok := desc.Lookup("hello", entities.KindReadOnly)
			require.True(t, ok)
			assert.Equal(t, "uint32", fn.Outputs[0].Type)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		_, err := p.Parse([]byte("functions: [unclosed"))
		assert.Error(t, err)
	})
}

func TestToJSON(t *testing.T) {
	out, err := parser.ToJSON([]byte("contract: hello\nextra: 1\nfunctions: []\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"contract":"hello","extra":1,"functions":[]}`, string(out))

	_, err = parser.ToJSON([]byte("a: [b"))
	assert.Error(t, err)
}
