package engine

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/reglet-dev/contract-sdk/query"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// value is the result of evaluating a BoolNode: a boolean or raw bytes.
type value struct {
	raw    []byte
	b      bool
	isBool bool
}

func boolValue(b bool) value { return value{b: b, isBool: true} }

// encoded returns the wire form of v, so bools compare against encoded columns.
func (v value) encoded() []byte {
	if v.isBool {
		return wireformat.MustMarshal(wireformat.Bool(v.b))
	}
	return v.raw
}

// truth returns v as a boolean. Byte values qualify when they hold an encoded bool.
func (v value) truth() (bool, error) {
	if v.isBool {
		return v.b, nil
	}
	b, err := wireformat.Decode[wireformat.Bool](v.raw)
	if err != nil {
		return false, fmt.Errorf("operand is not a boolean: %w", err)
	}
	return bool(b), nil
}

// Evaluate computes node against row. Identifiers naming absent columns
// evaluate to empty bytes.
func Evaluate(node query.BoolNode, row query.Row) (bool, error) {
	v, err := eval(node, row)
	if err != nil {
		return false, err
	}
	return v.truth()
}

func eval(node query.BoolNode, row query.Row) (value, error) {
	switch node.Value.Category {
	case query.CategoryBool:
		return boolValue(node.Value.Literal), nil
	case query.CategoryIdent:
		raw, _ := row.Get(node.Value.Identifier)
		return value{raw: raw}, nil
	case query.CategoryValue:
		return value{raw: node.Value.Value}, nil
	case query.CategoryOp:
		if node.Left == nil || node.Right == nil {
			return value{}, fmt.Errorf("%s node requires two children", node.Value.Operator)
		}
		left, err := eval(*node.Left, row)
		if err != nil {
			return value{}, err
		}
		right, err := eval(*node.Right, row)
		if err != nil {
			return value{}, err
		}
		return apply(node.Value.Operator, left, right)
	default:
		return value{}, fmt.Errorf("unknown node category %s", node.Value.Category)
	}
}

func apply(op query.BinaryOperator, left, right value) (value, error) {
	switch op {
	case query.OperatorEqual:
		if left.isBool && right.isBool {
			return boolValue(left.b == right.b), nil
		}
		return boolValue(bytes.Equal(left.encoded(), right.encoded())), nil
	case query.OperatorLessThan:
		return boolValue(compare(left.encoded(), right.encoded()) < 0), nil
	case query.OperatorGreaterThan:
		return boolValue(compare(left.encoded(), right.encoded()) > 0), nil
	case query.OperatorAnd, query.OperatorOr:
		l, err := left.truth()
		if err != nil {
			return value{}, fmt.Errorf("%s left: %w", op, err)
		}
		r, err := right.truth()
		if err != nil {
			return value{}, fmt.Errorf("%s right: %w", op, err)
		}
		if op == query.OperatorAnd {
			return boolValue(l && r), nil
		}
		return boolValue(l || r), nil
	default:
		return value{}, fmt.Errorf("unknown operator %s", op)
	}
}

// compare orders two operands. When both are 4 or 8 bytes long they are read
// as little-endian unsigned integers, so encoded uint32 and uint64 values
// order numerically; anything else compares byte-wise.
func compare(a, b []byte) int {
	x, aok := unsigned(a)
	y, bok := unsigned(b)
	if !aok || !bok {
		return bytes.Compare(a, b)
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func unsigned(b []byte) (uint64, bool) {
	switch len(b) {
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), true
	case 8:
		return binary.LittleEndian.Uint64(b), true
	}
	return 0, false
}

// FilterRows keeps the rows for which expr is true.
func FilterRows(rows []query.Row, expr query.BooleanExpr) ([]query.Row, error) {
	var out []query.Row
	for i, row := range rows {
		ok, err := Evaluate(expr.Root, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// ProjectRows returns only the requested columns, in that order.
func ProjectRows(rows []query.Row, props []string) ([]query.Row, error) {
	out := make([]query.Row, 0, len(rows))
	for i, row := range rows {
		cols := make([]query.Column, 0, len(props))
		for _, name := range props {
			v, ok := row.Get(name)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown column %q in select list", i, name)
			}
			cols = append(cols, query.Column{Name: name, Value: v})
		}
		out = append(out, query.Row{Columns: cols})
	}
	return out, nil
}

// Apply runs the operations of q, in order, over rows.
func Apply(rows []query.Row, q query.Query) ([]query.Row, error) {
	var err error
	for i, op := range q.Operations {
		switch o := op.(type) {
		case query.Select:
			rows, err = ProjectRows(rows, o.Props)
		case query.Filter:
			rows, err = FilterRows(rows, o.Expression)
		default:
			err = fmt.Errorf("unsupported operation %T", op)
		}
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return rows, nil
}
