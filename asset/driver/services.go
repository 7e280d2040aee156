/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

import (
	"context"
	"crypto/ed25519"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/pkg/errors"
)

// ErrNoAuthority is returned by a Keyring that does not custody the requested identity
var ErrNoAuthority = errors.New("no signing authority for identity")

// MetadataStore turns a descriptor into a stable URI the metadata record can reference
//
//go:generate counterfeiter -o mock/metadata_store.go -fake-name MetadataStore . MetadataStore
type MetadataStore interface {
	Publish(ctx context.Context, d asset.Descriptor) (string, error)
}

// SecretProvider supplies the issuer signing material at process start
type SecretProvider interface {
	IssuerKey(ctx context.Context) (ed25519.PrivateKey, error)
}

// Keyring resolves the signers the process holds custody for
//
//go:generate counterfeiter -o mock/keyring.go -fake-name Keyring . Keyring
type Keyring interface {
	Signer(id asset.Identity) (Signer, error)
}
