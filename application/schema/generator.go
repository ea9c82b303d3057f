// Package schema generates JSON Schema documents for the SDK's JSON formats.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/reglet-dev/contract-sdk/domain/entities"
)

// AbiSchemaID identifies the interface description schema.
const AbiSchemaID = "https://reglet.dev/schemas/contract-abi.json"

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	return marshal(reflector.Reflect(v))
}

// AbiSchema returns the JSON Schema of the document contracts return from
// their describe export.
func AbiSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(&entities.Abi{})
	s.ID = jsonschema.ID(AbiSchemaID)
	s.Title = "Contract interface description"
	return marshal(s)
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}
