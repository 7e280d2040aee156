/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/pkg/errors"
)

// KeyPair is an in-process ed25519 signer
type KeyPair struct {
	id  asset.Identity
	key ed25519.PrivateKey
}

// NewKeyPair generates a fresh random key pair
func NewKeyPair() (*KeyPair, error) {
	_, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed generating key pair")
	}
	return FromPrivateKey(sk)
}

// FromPrivateKey wraps an existing ed25519 private key
func FromPrivateKey(sk ed25519.PrivateKey) (*KeyPair, error) {
	if len(sk) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid private key length [%d]", len(sk))
	}
	id, err := asset.IdentityFromBytes(sk.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	return &KeyPair{id: id, key: sk}, nil
}

func (k *KeyPair) Identity() asset.Identity {
	return k.id
}

func (k *KeyPair) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.key, message), nil
}

func (k *KeyPair) String() string {
	return "KeyPair[" + k.id.String() + "]"
}

// GoString prevents the private key from being printed with %#v
func (k *KeyPair) GoString() string {
	return k.String() + logging.Redacted(k.key).String()
}
