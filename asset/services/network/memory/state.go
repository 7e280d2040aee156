/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memory

import "github.com/nftmint-labs/asset-sdk/asset"

type assetState struct {
	decimals        uint8
	mintAuthority   asset.Identity
	freezeAuthority asset.Identity
	supply          uint64
}

type holdingState struct {
	owner   asset.Identity
	asset   asset.Identity
	balance uint64
}

// MetadataInfo is the content of a metadata record
type MetadataInfo struct {
	Asset           asset.Identity
	Name            string
	Symbol          string
	URI             string
	Creator         asset.Identity
	UpdateAuthority asset.Identity
	IsMutable       bool
}

type editionState struct {
	maxSupply uint64
}

type account struct {
	lamports uint64
	size     uint64
	asset    *assetState
	holding  *holdingState
	metadata *MetadataInfo
	edition  *editionState
}

func (a *account) clone() *account {
	c := *a
	if a.asset != nil {
		s := *a.asset
		c.asset = &s
	}
	if a.holding != nil {
		s := *a.holding
		c.holding = &s
	}
	if a.metadata != nil {
		s := *a.metadata
		c.metadata = &s
	}
	if a.edition != nil {
		s := *a.edition
		c.edition = &s
	}
	return &c
}

type state map[asset.Identity]*account

func (s state) clone() state {
	c := make(state, len(s))
	for k, v := range s {
		c[k] = v.clone()
	}
	return c
}
