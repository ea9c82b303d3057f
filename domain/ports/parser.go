package ports

import "github.com/reglet-dev/contract-sdk/domain/entities"

// AbiParser parses an interface description document into an Abi.
type AbiParser interface {
	// Parse unmarshals YAML or JSON bytes into an Abi.
	Parse(data []byte) (*entities.Abi, error)
}
