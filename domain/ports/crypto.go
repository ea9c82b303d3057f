package ports

import (
	"context"
	"fmt"
)

// HashAlgorithm selects a host hash function.
type HashAlgorithm uint32

// Hash algorithms offered by the host. The ordinals are part of the host
// boundary protocol.
const (
	SHA256 HashAlgorithm = iota
	SHA3_256
	SHA3_512
	Keccak256
	Shake256
)

// HashAlgorithmCount is the number of defined hash algorithms.
const HashAlgorithmCount = 5

func (a HashAlgorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case SHA3_256:
		return "sha3_256"
	case SHA3_512:
		return "sha3_512"
	case Keccak256:
		return "keccak256"
	case Shake256:
		return "shake256"
	default:
		return fmt.Sprintf("hash(%d)", uint32(a))
	}
}

// Key sizes used by the signing primitives.
const (
	PrivateKeySize = 32
	PublicKeySize  = 32
	SignatureSize  = 64
)

// Crypto provides hashing and signing primitives.
type Crypto interface {
	// Hash digests data with alg.
	Hash(ctx context.Context, alg HashAlgorithm, data []byte) ([]byte, error)

	// GenerateKeyPair returns a fresh private and public key.
	GenerateKeyPair(ctx context.Context) (priv, pub []byte, err error)

	// Sign signs message with priv. A key of the wrong size returns errors.ErrKeyLength.
	Sign(ctx context.Context, priv, message []byte) ([]byte, error)

	// Verify reports whether sig is a valid signature of message by pub.
	Verify(ctx context.Context, pub, message, sig []byte) (bool, error)
}
