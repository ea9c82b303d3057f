package query

import "fmt"

// BinaryOperator is the operator of an interior BoolNode.
type BinaryOperator uint32

// Operator ordinals are fixed by the wire format.
const (
	OperatorEqual BinaryOperator = iota
	OperatorLessThan
	OperatorGreaterThan
	OperatorOr
	OperatorAnd
)

const operatorCount = 5

func (o BinaryOperator) String() string {
	switch o {
	case OperatorEqual:
		return "EQUAL"
	case OperatorLessThan:
		return "LESS_THAN"
	case OperatorGreaterThan:
		return "GREATER_THAN"
	case OperatorOr:
		return "OR"
	case OperatorAnd:
		return "AND"
	default:
		return fmt.Sprintf("BinaryOperator(%d)", uint32(o))
	}
}

// Valid reports whether o is a defined operator.
func (o BinaryOperator) Valid() bool {
	return o < operatorCount
}

// BoolCategory is the discriminant of a BoolType.
type BoolCategory uint32

// Category ordinals are fixed by the wire format.
const (
	CategoryBool BoolCategory = iota
	CategoryIdent
	CategoryOp
	CategoryValue
)

func (c BoolCategory) String() string {
	switch c {
	case CategoryBool:
		return "BOOL"
	case CategoryIdent:
		return "IDENT"
	case CategoryOp:
		return "OP"
	case CategoryValue:
		return "VALUE"
	default:
		return fmt.Sprintf("BoolCategory(%d)", uint32(c))
	}
}
