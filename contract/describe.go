package contract

import (
	"sort"

	"github.com/reglet-dev/contract-sdk/domain/entities"
)

// SDKVersion is reported in every interface description.
const SDKVersion = "0.1.0"

var kindOrder = map[entities.FunctionKind]int{
	entities.KindConstructor: 0,
	entities.KindMutating:    1,
	entities.KindReadOnly:    2,
}

// Describe returns the interface description of every registered function,
// sorted by kind (constructor, function, readonly) and then by name.
func (r *Router) Describe() *entities.Abi {
	sigs := make([]entities.FunctionSignature, 0, len(r.functions)+len(r.readOnly)+1)
	if r.constructor != nil {
		sigs = append(sigs, r.constructor.signature(r.ctorName, entities.KindConstructor))
	}
	for name, fn := range r.functions {
		sigs = append(sigs, fn.signature(name, entities.KindMutating))
	}
	for name, fn := range r.readOnly {
		sigs = append(sigs, fn.signature(name, entities.KindReadOnly))
	}
	sort.Slice(sigs, func(i, j int) bool {
		if sigs[i].Kind != sigs[j].Kind {
			return kindOrder[sigs[i].Kind] < kindOrder[sigs[j].Kind]
		}
		return sigs[i].Name < sigs[j].Name
	})
	return &entities.Abi{Contract: r.name, SDKVersion: SDKVersion, Functions: sigs}
}

// Names returns the sorted names registered for kind.
func (r *Router) Names(kind entities.FunctionKind) []string {
	var table map[string]*Function
	switch kind {
	case entities.KindMutating:
		table = r.functions
	case entities.KindReadOnly:
		table = r.readOnly
	case entities.KindConstructor:
		if r.constructor != nil {
			return []string{r.ctorName}
		}
		return nil
	}
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
