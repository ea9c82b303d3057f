package query

import "github.com/reglet-dev/contract-sdk/wireformat"

// Ident is a leaf naming a column.
func Ident(name string) BoolNode {
	return BoolNode{Value: BoolType{Category: CategoryIdent, Identifier: name}}
}

// Literal is a constant boolean leaf.
func Literal(b bool) BoolNode {
	return BoolNode{Value: BoolType{Category: CategoryBool, Literal: b}}
}

// Value is a leaf holding an encoded constant.
func Value(b []byte) BoolNode {
	return BoolNode{Value: BoolType{Category: CategoryValue, Value: b}}
}

// ValueOf is a leaf holding the encoding of v.
func ValueOf(v wireformat.Marshaler) BoolNode {
	return Value(wireformat.MustMarshal(v))
}

// Binary joins left and right under op.
func Binary(op BinaryOperator, left, right BoolNode) BoolNode {
	return BoolNode{
		Value: BoolType{Category: CategoryOp, Operator: op},
		Left:  &left,
		Right: &right,
	}
}

// Eq is left == right.
func Eq(left, right BoolNode) BoolNode { return Binary(OperatorEqual, left, right) }

// Lt is left < right.
func Lt(left, right BoolNode) BoolNode { return Binary(OperatorLessThan, left, right) }

// Gt is left > right.
func Gt(left, right BoolNode) BoolNode { return Binary(OperatorGreaterThan, left, right) }

// And is left && right.
func And(left, right BoolNode) BoolNode { return Binary(OperatorAnd, left, right) }

// Or is left || right.
func Or(left, right BoolNode) BoolNode { return Binary(OperatorOr, left, right) }

// FilterBy is a Filter operation over expr.
func FilterBy(expr BoolNode) Op {
	return Filter{Expression: BooleanExpr{Root: expr}}
}

// SelectProps is a Select operation over props.
func SelectProps(props ...string) Op {
	return Select{Props: props}
}

// NewQuery builds a Query over source.
func NewQuery(source string, ops ...Op) Query {
	return Query{Source: source, Operations: ops}
}

// NewInsert builds an Insert whose data is the encoding of row.
func NewInsert(table string, row wireformat.Marshaler) (Insert, error) {
	data, err := wireformat.Marshal(row)
	if err != nil {
		return Insert{}, err
	}
	return Insert{Table: table, Data: data}, nil
}
