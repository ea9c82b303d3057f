// Package entities provides core domain entities for the SDK.
// These are general-purpose types shared by contracts, hosts and tooling.
package entities
