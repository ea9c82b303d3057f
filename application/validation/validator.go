// Package validation checks interface description documents against the
// published JSON Schema.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reglet-dev/contract-sdk/application/schema"
	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// AbiValidator implements validation using the interface description schema.
type AbiValidator struct {
	schema *jsonschema.Schema
}

var _ ports.AbiValidator = (*AbiValidator)(nil)

// NewAbiValidator compiles the interface description schema.
func NewAbiValidator() (*AbiValidator, error) {
	doc, err := schema.AbiSchema()
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schema.AbiSchemaID, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	sch, err := compiler.Compile(schema.AbiSchemaID)
	if err != nil {
		return nil, fmt.Errorf("invalid interface description schema: %w", err)
	}
	return &AbiValidator{schema: sch}, nil
}

// Validate checks document against the schema. Only a document that is not
// JSON at all is an error.
func (v *AbiValidator) Validate(document []byte) (*entities.ValidationResult, error) {
	var obj any
	if err := json.Unmarshal(document, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	result := &entities.ValidationResult{Valid: true}
	err := v.schema.Validate(obj)
	if err == nil {
		return result, nil
	}
	result.Valid = false
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, entities.ValidationError{Message: err.Error()})
		return result, nil
	}
	for _, leaf := range leaves(ve) {
		result.Errors = append(result.Errors, entities.ValidationError{
			Field:   leaf.InstanceLocation,
			Message: leaf.Message,
		})
	}
	return result, nil
}

// leaves flattens the error tree to the failures that caused it.
func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	return out
}
