// Package wireformat implements the binary value codec shared by contracts and
// hosts. Integers are fixed-width little-endian with no prefix, opaque bytes
// and strings carry a uint32 length prefix, variable arrays carry a uint32
// element count bounded by a per-field maximum, structures are their fields
// concatenated in declared order, and tagged unions are a uint32 discriminant
// followed by the selected arm. There is no padding anywhere.
//
// These layouts are the ABI contract between guest and host and must not
// change without coordinated redeployment of both sides.
package wireformat
