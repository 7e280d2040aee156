/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sigverify_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/sigverify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentity(t *testing.T) (asset.Identity, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	id, err := asset.IdentityFromBytes(pub)
	require.NoError(t, err)
	return id, priv
}

func TestVerifyValidSignature(t *testing.T) {
	id, priv := newIdentity(t)
	msg := []byte("mint Ancient Colosseum ts=1700000000")
	sig := ed25519.Sign(priv, msg)
	assert.True(t, sigverify.Verify(msg, sig, id))
}

func TestVerifySingleBitMutations(t *testing.T) {
	id, priv := newIdentity(t)
	msg := []byte("nonce=42")
	sig := ed25519.Sign(priv, msg)

	for i := 0; i < len(msg)*8; i++ {
		mutated := append([]byte(nil), msg...)
		mutated[i/8] ^= 1 << (i % 8)
		assert.Falsef(t, sigverify.Verify(mutated, sig, id), "message bit %d", i)
	}
	for i := 0; i < len(sig)*8; i++ {
		mutated := append([]byte(nil), sig...)
		mutated[i/8] ^= 1 << (i % 8)
		assert.Falsef(t, sigverify.Verify(msg, mutated, id), "signature bit %d", i)
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	id, priv := newIdentity(t)
	other, _ := newIdentity(t)
	msg := []byte("hello")
	sig := ed25519.Sign(priv, msg)

	testCases := []struct {
		name string
		msg  []byte
		sig  []byte
		id   asset.Identity
	}{
		{name: "wrong identity", msg: msg, sig: sig, id: other},
		{name: "empty signature", msg: msg, sig: nil, id: id},
		{name: "short signature", msg: msg, sig: sig[:10], id: id},
		{name: "long signature", msg: msg, sig: append(append([]byte(nil), sig...), 0), id: id},
		{name: "zero identity", msg: msg, sig: sig, id: asset.Identity{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, sigverify.Verify(tc.msg, tc.sig, tc.id))
			})
		})
	}
}

func TestVerifyAssertion(t *testing.T) {
	id, priv := newIdentity(t)
	other, _ := newIdentity(t)
	msg := []byte("ts=1")
	a := &asset.SignedAssertion{Message: msg, Signature: ed25519.Sign(priv, msg), Identity: id}

	v := sigverify.NewVerifier()
	assert.True(t, v.VerifyAssertion(a, id))
	assert.False(t, v.VerifyAssertion(a, other))
	assert.False(t, v.VerifyAssertion(nil, id))
}
