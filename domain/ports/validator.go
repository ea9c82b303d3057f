package ports

import "github.com/reglet-dev/contract-sdk/domain/entities"

// AbiValidator checks an interface description document before a host
// trusts it.
type AbiValidator interface {
	// Validate checks a JSON interface description. A document that fails
	// the checks yields an invalid result, not an error.
	Validate(document []byte) (*entities.ValidationResult, error)
}
