/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"sync"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/pkg/errors"
)

// Keyring is an in-memory custody of signers
type Keyring struct {
	mu      sync.RWMutex
	signers map[asset.Identity]driver.Signer
}

func NewKeyring(signers ...driver.Signer) *Keyring {
	k := &Keyring{signers: make(map[asset.Identity]driver.Signer, len(signers))}
	for _, s := range signers {
		k.Add(s)
	}
	return k
}

func (k *Keyring) Add(s driver.Signer) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.signers[s.Identity()] = s
}

func (k *Keyring) Signer(id asset.Identity) (driver.Signer, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	s, ok := k.signers[id]
	if !ok {
		return nil, errors.Wrapf(driver.ErrNoAuthority, "[%s]", id)
	}
	return s, nil
}
