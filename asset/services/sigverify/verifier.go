/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sigverify checks that a message has been signed by the private key
// matching a claimed identity. Verification never fails open.
package sigverify

import (
	"crypto/ed25519"

	"github.com/nftmint-labs/asset-sdk/asset"
)

// SignatureSize is the size of a ledger signature
const SignatureSize = ed25519.SignatureSize

// Verify returns true iff signature is a valid ed25519 signature of message by identity.
// Malformed input yields false.
func Verify(message, signature []byte, identity asset.Identity) bool {
	if len(signature) != SignatureSize || identity.IsNone() {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(identity[:]), message, signature)
}

// Verifier is the service form of Verify
type Verifier struct{}

func NewVerifier() *Verifier { return &Verifier{} }

func (v *Verifier) Verify(message, signature []byte, identity asset.Identity) bool {
	return Verify(message, signature, identity)
}

// VerifyAssertion checks that the assertion has been produced by the expected identity
func (v *Verifier) VerifyAssertion(a *asset.SignedAssertion, expected asset.Identity) bool {
	if a == nil || a.Identity != expected {
		return false
	}
	return Verify(a.Message, a.Signature, expected)
}
