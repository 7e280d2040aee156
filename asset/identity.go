/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package asset

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// IdentitySize is the size in bytes of a ledger identity
const IdentitySize = ed25519.PublicKeySize

// Identity models a ledger account holder. It is the raw ed25519 public key of the holder.
type Identity [IdentitySize]byte

// ParseIdentity decodes the base58 text form of an identity.
func ParseIdentity(s string) (Identity, error) {
	if len(s) == 0 {
		return Identity{}, errors.Wrap(ErrValidation, "empty identity")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return Identity{}, errors.Wrapf(ErrValidation, "invalid identity encoding [%s]: %s", s, err)
	}
	return IdentityFromBytes(raw)
}

// MustParseIdentity is like ParseIdentity but panics on error.
func MustParseIdentity(s string) Identity {
	id, err := ParseIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IdentityFromBytes copies raw into a new Identity.
func IdentityFromBytes(raw []byte) (Identity, error) {
	var id Identity
	if len(raw) != IdentitySize {
		return id, errors.Wrapf(ErrValidation, "invalid identity length [%d], expected [%d]", len(raw), IdentitySize)
	}
	copy(id[:], raw)
	return id, nil
}

func (id Identity) String() string {
	return base58.Encode(id[:])
}

func (id Identity) Bytes() []byte {
	out := make([]byte, IdentitySize)
	copy(out, id[:])
	return out
}

func (id Identity) IsNone() bool {
	return id == Identity{}
}

func (id Identity) Equal(other Identity) bool {
	return id == other
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// SignedAssertion is a message signed by the private key of the claimed identity.
// The message is expected to embed a timestamp or a nonce.
type SignedAssertion struct {
	Message   []byte
	Signature []byte
	Identity  Identity
}
