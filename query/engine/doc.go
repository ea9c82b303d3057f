// Package engine is a reference query executor for hosts. It stores rows in
// the query.Row layout, evaluates filter and projection pipelines over them,
// and serves results through the two-phase run/fetch protocol.
package engine
