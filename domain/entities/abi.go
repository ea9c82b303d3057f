package entities

import "encoding/json"

// FunctionKind classifies a contract entry point.
type FunctionKind string

const (
	// KindMutating functions may change persisted state.
	KindMutating FunctionKind = "function"
	// KindReadOnly functions are served from a separate table and must not mutate state.
	KindReadOnly FunctionKind = "readonly"
	// KindConstructor is the single deployment-time entry point.
	KindConstructor FunctionKind = "constructor"
)

// Parameter names one argument or return value and its wire type.
type Parameter struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" jsonschema:"description=Argument name as declared at registration"`
	Type string `json:"type" yaml:"type" jsonschema:"required,description=Wire type name such as uint32 or string"`
}

// FunctionSignature describes one callable contract entry point.
type FunctionSignature struct {
	Name    string       `json:"name" yaml:"name" jsonschema:"required"`
	Kind    FunctionKind `json:"type" yaml:"type" jsonschema:"required,enum=function,enum=readonly,enum=constructor"`
	Inputs  []Parameter  `json:"inputs" yaml:"inputs"`
	Outputs []Parameter  `json:"outputs" yaml:"outputs"`
}

// Abi is the human-readable interface description of a contract.
type Abi struct {
	Contract   string              `json:"contract,omitempty" yaml:"contract,omitempty"`
	SDKVersion string              `json:"sdk_version,omitempty" yaml:"sdk_version,omitempty"`
	Functions  []FunctionSignature `json:"functions" yaml:"functions"`
}

// Lookup returns the signature with the given name and kind.
func (a *Abi) Lookup(name string, kind FunctionKind) (FunctionSignature, bool) {
	for _, fn := range a.Functions {
		if fn.Name == name && fn.Kind == kind {
			return fn, true
		}
	}
	return FunctionSignature{}, false
}

// JSON renders the description as indented JSON.
func (a *Abi) JSON() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}
