package ports

import "github.com/reglet-dev/contract-sdk/domain/entities"

// ContractRegistry tracks the interface descriptions of loaded contracts.
type ContractRegistry interface {
	// Register records the description under its contract name.
	Register(abi *entities.Abi) error

	// Lookup retrieves the description of a contract.
	Lookup(name string) (*entities.Abi, bool)

	// Remove forgets a contract.
	Remove(name string)

	// List returns the sorted names of all registered contracts.
	List() []string
}
