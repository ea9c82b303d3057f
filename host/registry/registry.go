// Package registry keeps the interface descriptions of loaded contracts.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// registryConfig holds configuration for the Registry.
type registryConfig struct {
	strictMode bool // Fail on duplicate registrations
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		strictMode: true,
	}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithStrictMode enables/disables strict mode for duplicate registrations.
// Default is true (fail on duplicates). Disable to let a reload replace a
// contract of the same name.
func WithStrictMode(enabled bool) RegistryOption {
	return func(c *registryConfig) {
		c.strictMode = enabled
	}
}

// Registry implements ports.ContractRegistry.
type Registry struct {
	config    registryConfig
	contracts sync.Map // map[string]*entities.Abi
}

var _ ports.ContractRegistry = (*Registry)(nil)

// NewRegistry creates a new Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{config: cfg}
}

// Register records abi under its contract name.
func (r *Registry) Register(abi *entities.Abi) error {
	if abi == nil {
		return fmt.Errorf("nil interface description")
	}
	if abi.Contract == "" {
		return fmt.Errorf("interface description has no contract name")
	}
	if r.config.strictMode {
		if _, loaded := r.contracts.LoadOrStore(abi.Contract, abi); loaded {
			return fmt.Errorf("contract %q already registered", abi.Contract)
		}
		return nil
	}
	r.contracts.Store(abi.Contract, abi)
	return nil
}

// Lookup retrieves the description of a contract.
func (r *Registry) Lookup(name string) (*entities.Abi, bool) {
	v, ok := r.contracts.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*entities.Abi), true
}

// Remove forgets a contract.
func (r *Registry) Remove(name string) {
	r.contracts.Delete(name)
}

// List returns all registered contract names, sorted.
func (r *Registry) List() []string {
	var names []string
	r.contracts.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}
