package query

import (
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// DefaultMaxDepth bounds BoolNode nesting when decoding queries.
const DefaultMaxDepth = 32

// BoolType is the payload of a BoolNode. Category selects which of the other
// fields is meaningful.
type BoolType struct {
	Identifier string
	Value      []byte
	Category   BoolCategory
	Operator   BinaryOperator
	Literal    bool
}

// MarshalWire implements wireformat.Marshaler.
func (t BoolType) MarshalWire(e *wireformat.Encoder) {
	e.PutDiscriminant(uint32(t.Category))
	switch t.Category {
	case CategoryBool:
		e.PutBool(t.Literal)
	case CategoryIdent:
		e.PutString(t.Identifier)
	case CategoryOp:
		if !t.Operator.Valid() {
			e.Fail(schemaError("bool type", fmt.Errorf("undefined operator %d", uint32(t.Operator))))
			return
		}
		e.PutUint32(uint32(t.Operator))
	case CategoryValue:
		e.PutOpaque(t.Value)
	default:
		e.Fail(schemaError("bool type", fmt.Errorf("undefined category %d", uint32(t.Category))))
	}
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (t *BoolType) UnmarshalWire(d *wireformat.Decoder) error {
	disc, offset, err := d.Discriminant()
	if err != nil {
		return err
	}
	var out BoolType
	out.Category = BoolCategory(disc)
	switch out.Category {
	case CategoryBool:
		out.Literal, err = d.Bool()
	case CategoryIdent:
		out.Identifier, err = d.String()
	case CategoryOp:
		var op uint32
		op, err = d.Enum("binary operator", operatorCount)
		out.Operator = BinaryOperator(op)
	case CategoryValue:
		out.Value, err = d.Opaque()
	default:
		return wireformat.UnknownVariant("bool type", disc, offset)
	}
	if err != nil {
		return err
	}
	*t = out
	return nil
}

// BoolNode is one node of a filter expression tree.
type BoolNode struct {
	Left  *BoolNode
	Right *BoolNode
	Value BoolType
}

// IsOperator reports whether n is an interior node.
func (n BoolNode) IsOperator() bool {
	return n.Value.Category == CategoryOp
}

// Validate checks the arity of every node in the tree rooted at n.
func (n BoolNode) Validate() error {
	if err := n.checkArity(); err != nil {
		return err
	}
	if n.Left != nil {
		if err := n.Left.Validate(); err != nil {
			return fmt.Errorf("left: %w", err)
		}
	}
	if n.Right != nil {
		if err := n.Right.Validate(); err != nil {
			return fmt.Errorf("right: %w", err)
		}
	}
	return nil
}

func (n BoolNode) checkArity() error {
	hasLeft, hasRight := n.Left != nil, n.Right != nil
	if n.IsOperator() {
		if !hasLeft || !hasRight {
			return fmt.Errorf("%w: %s node requires two children", errors.ErrInvalidEncoding, n.Value.Operator)
		}
		return nil
	}
	if hasLeft || hasRight {
		return fmt.Errorf("%w: %s node must be a leaf", errors.ErrInvalidEncoding, n.Value.Category)
	}
	return nil
}

// MarshalWire implements wireformat.Marshaler. A node with the wrong number
// of children is a schema violation.
func (n BoolNode) MarshalWire(e *wireformat.Encoder) {
	if err := n.checkArity(); err != nil {
		e.Fail(schemaError("bool node", err))
		return
	}
	n.Value.MarshalWire(e)
	putChild(e, n.Left)
	putChild(e, n.Right)
}

func putChild(e *wireformat.Encoder, child *BoolNode) {
	if child == nil {
		e.PutUint32(0)
		return
	}
	e.PutUint32(1)
	child.MarshalWire(e)
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (n *BoolNode) UnmarshalWire(d *wireformat.Decoder) error {
	if err := d.Enter("bool node"); err != nil {
		return err
	}
	defer d.Leave()

	offset := d.Position()
	var out BoolNode
	if err := out.Value.UnmarshalWire(d); err != nil {
		return wireformat.Field("value", err)
	}
	left, err := readChild(d)
	if err != nil {
		return wireformat.Field("left", err)
	}
	right, err := readChild(d)
	if err != nil {
		return wireformat.Field("right", err)
	}
	out.Left, out.Right = left, right
	if err := out.checkArity(); err != nil {
		return &errors.DecodeError{Err: err, Op: "bool node", Offset: offset}
	}
	*n = out
	return nil
}

func readChild(d *wireformat.Decoder) (*BoolNode, error) {
	count, err := d.Length("bool node children", 1)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	child := new(BoolNode)
	if err := child.UnmarshalWire(d); err != nil {
		return nil, err
	}
	return child, nil
}

// BooleanExpr wraps the root of a filter expression.
type BooleanExpr struct {
	Root BoolNode
}

// MarshalWire implements wireformat.Marshaler.
func (x BooleanExpr) MarshalWire(e *wireformat.Encoder) {
	x.Root.MarshalWire(e)
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (x *BooleanExpr) UnmarshalWire(d *wireformat.Decoder) error {
	return x.Root.UnmarshalWire(d)
}

func schemaError(typ string, err error) error {
	return &errors.WireFormatError{Operation: "encode", Type: typ, Err: err}
}
