// Package hostcrypto implements the host hashing and signing primitives.
package hostcrypto

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// ShakeOutputSize is the digest length produced for Shake256.
const ShakeOutputSize = 32

// Crypto implements ports.Crypto. Private keys are 32-byte ed25519 seeds.
type Crypto struct {
	random io.Reader
}

var _ ports.Crypto = (*Crypto)(nil)

// Option configures Crypto.
type Option func(*Crypto)

// WithRandom sets the entropy source used for key generation.
func WithRandom(r io.Reader) Option {
	return func(c *Crypto) {
		c.random = r
	}
}

// New returns a Crypto reading entropy from crypto/rand.
func New(opts ...Option) *Crypto {
	c := &Crypto{random: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hash implements ports.Crypto.
func (c *Crypto) Hash(_ context.Context, alg ports.HashAlgorithm, data []byte) ([]byte, error) {
	switch alg {
	case ports.SHA256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case ports.SHA3_256:
		sum := sha3.Sum256(data)
		return sum[:], nil
	case ports.SHA3_512:
		sum := sha3.Sum512(data)
		return sum[:], nil
	case ports.Keccak256:
		h := sha3.NewLegacyKeccak256()
		h.Write(data)
		return h.Sum(nil), nil
	case ports.Shake256:
		out := make([]byte, ShakeOutputSize)
		sha3.ShakeSum256(out, data)
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %s", alg)
	}
}

// GenerateKeyPair implements ports.Crypto.
func (c *Crypto) GenerateKeyPair(context.Context) ([]byte, []byte, error) {
	pub, priv, err := ed25519.GenerateKey(c.random)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errors.ErrKeyPairGenerate, err)
	}
	return priv.Seed(), []byte(pub), nil
}

// Sign implements ports.Crypto.
func (c *Crypto) Sign(_ context.Context, priv, message []byte) ([]byte, error) {
	if len(priv) != ports.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key is %d bytes, want %d", errors.ErrKeyLength, len(priv), ports.PrivateKeySize)
	}
	return ed25519.Sign(ed25519.NewKeyFromSeed(priv), message), nil
}

// Verify implements ports.Crypto. Malformed keys or signatures verify as false.
func (c *Crypto) Verify(_ context.Context, pub, message, sig []byte) (bool, error) {
	if len(pub) != ports.PublicKeySize || len(sig) != ports.SignatureSize {
		return false, nil
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, sig), nil
}
