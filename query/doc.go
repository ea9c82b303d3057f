// Package query models table queries a contract hands to its host: an
// ordered list of projection and filter operations over one source table,
// plus row inserts.
//
// Filters are boolean expression trees of BoolNode values. Operator nodes
// carry exactly one left and one right child; literal, identifier and value
// nodes carry none. Trees are decoded with an explicit nesting limit
// (DefaultMaxDepth unless overridden with wireformat.WithMaxDepth).
//
// Build queries with the helpers in this package:
//
//	q := query.NewQuery("Accounts",
//		query.FilterBy(query.Eq(query.Ident("owner"), query.Value(key))),
//		query.SelectProps("name", "balance"),
//	)
//	rows, err := query.RunRows(ctx, rt, q)
package query
