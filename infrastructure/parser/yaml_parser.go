// Package parser reads interface description documents written as YAML or JSON.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"gopkg.in/yaml.v3"
)

// YamlAbiParser implements AbiParser for YAML. JSON documents parse too.
type YamlAbiParser struct{}

// NewYamlAbiParser creates a new YamlAbiParser.
func NewYamlAbiParser() ports.AbiParser {
	return &YamlAbiParser{}
}

// Parse unmarshals YAML bytes into an Abi.
func (p *YamlAbiParser) Parse(data []byte) (*entities.Abi, error) {
	var desc entities.Abi
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse interface description: %w", err)
	}
	return &desc, nil
}

// ToJSON re-encodes a YAML or JSON document as JSON, keeping fields Abi does
// not know about so they can still be validated.
func ToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}
