// Package ports defines the host capability interfaces a contract consumes.
// Contract code depends only on these abstractions; the sandbox adapter, the
// in-memory test host and the persistent hosts implement them.
package ports
