package hostfuncs

import (
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Empty is the request or response of host functions that carry no data.
type Empty struct{}

func (Empty) MarshalWire(*wireformat.Encoder) {}

func (*Empty) UnmarshalWire(*wireformat.Decoder) error { return nil }

// StoreRequest is the request of store.
type StoreRequest struct {
	Key   []byte
	Value []byte
}

func (r StoreRequest) MarshalWire(e *wireformat.Encoder) {
	e.PutOpaque(r.Key)
	e.PutOpaque(r.Value)
}

func (r *StoreRequest) UnmarshalWire(d *wireformat.Decoder) error {
	key, err := d.Opaque()
	if err != nil {
		return wireformat.Field("key", err)
	}
	value, err := d.Opaque()
	if err != nil {
		return wireformat.Field("value", err)
	}
	r.Key, r.Value = key, value
	return nil
}

// HashRequest is the request of hash.
type HashRequest struct {
	Data      []byte
	Algorithm ports.HashAlgorithm
}

func (r HashRequest) MarshalWire(e *wireformat.Encoder) {
	e.PutUint32(uint32(r.Algorithm))
	e.PutOpaque(r.Data)
}

func (r *HashRequest) UnmarshalWire(d *wireformat.Decoder) error {
	alg, err := d.Enum("hash algorithm", ports.HashAlgorithmCount)
	if err != nil {
		return wireformat.Field("algorithm", err)
	}
	data, err := d.Opaque()
	if err != nil {
		return wireformat.Field("data", err)
	}
	r.Algorithm, r.Data = ports.HashAlgorithm(alg), data
	return nil
}

// KeyPairResponse is the response of generate_key_pair.
type KeyPairResponse struct {
	PrivateKey []byte
	PublicKey  []byte
}

func (r KeyPairResponse) MarshalWire(e *wireformat.Encoder) {
	if len(r.PrivateKey) != ports.PrivateKeySize || len(r.PublicKey) != ports.PublicKeySize {
		e.Fail(errKeyPairShape)
		return
	}
	e.PutFixedOpaque(r.PrivateKey)
	e.PutFixedOpaque(r.PublicKey)
}

func (r *KeyPairResponse) UnmarshalWire(d *wireformat.Decoder) error {
	priv, err := d.FixedOpaque(ports.PrivateKeySize)
	if err != nil {
		return wireformat.Field("private key", err)
	}
	pub, err := d.FixedOpaque(ports.PublicKeySize)
	if err != nil {
		return wireformat.Field("public key", err)
	}
	r.PrivateKey, r.PublicKey = priv, pub
	return nil
}

// SignRequest is the request of sign_message.
type SignRequest struct {
	PrivateKey []byte
	Message    []byte
}

func (r SignRequest) MarshalWire(e *wireformat.Encoder) {
	e.PutOpaque(r.PrivateKey)
	e.PutOpaque(r.Message)
}

func (r *SignRequest) UnmarshalWire(d *wireformat.Decoder) error {
	priv, err := d.Opaque()
	if err != nil {
		return wireformat.Field("private key", err)
	}
	msg, err := d.Opaque()
	if err != nil {
		return wireformat.Field("message", err)
	}
	r.PrivateKey, r.Message = priv, msg
	return nil
}

// VerifyRequest is the request of verify_signature.
type VerifyRequest struct {
	PublicKey []byte
	Message   []byte
	Signature []byte
}

func (r VerifyRequest) MarshalWire(e *wireformat.Encoder) {
	e.PutOpaque(r.PublicKey)
	e.PutOpaque(r.Message)
	e.PutOpaque(r.Signature)
}

func (r *VerifyRequest) UnmarshalWire(d *wireformat.Decoder) error {
	pub, err := d.Opaque()
	if err != nil {
		return wireformat.Field("public key", err)
	}
	msg, err := d.Opaque()
	if err != nil {
		return wireformat.Field("message", err)
	}
	sig, err := d.Opaque()
	if err != nil {
		return wireformat.Field("signature", err)
	}
	r.PublicKey, r.Message, r.Signature = pub, msg, sig
	return nil
}

// QueryHandle is the request of kq_query_fetch.
type QueryHandle ports.QueryHandle

func (h QueryHandle) MarshalWire(e *wireformat.Encoder) { e.PutFixedOpaque(h[:]) }

func (h *QueryHandle) UnmarshalWire(d *wireformat.Decoder) error {
	b, err := d.FixedOpaque(ports.QueryHandleSize)
	if err != nil {
		return wireformat.Field("handle", err)
	}
	copy(h[:], b)
	return nil
}

// QueryRunResponse is the response of kq_query_run.
type QueryRunResponse struct {
	Length uint32
	Handle ports.QueryHandle
}

func (r QueryRunResponse) MarshalWire(e *wireformat.Encoder) {
	e.PutUint32(r.Length)
	e.PutFixedOpaque(r.Handle[:])
}

func (r *QueryRunResponse) UnmarshalWire(d *wireformat.Decoder) error {
	length, err := d.Uint32()
	if err != nil {
		return wireformat.Field("length", err)
	}
	var h QueryHandle
	if err := h.UnmarshalWire(d); err != nil {
		return err
	}
	r.Length, r.Handle = length, ports.QueryHandle(h)
	return nil
}
