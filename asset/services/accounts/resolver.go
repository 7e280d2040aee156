/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package accounts

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/nftmint-labs/asset-sdk/asset/services/utils/cache"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("accounts")

const existenceCacheSize = 10_000

// HoldingAccount derives the holding account of owner for the given asset.
// Every party recomputes the same address without coordination.
func HoldingAccount(assetAddress, owner asset.Identity) (asset.Identity, error) {
	if assetAddress.IsNone() || owner.IsNone() {
		return asset.Identity{}, errors.Wrap(asset.ErrValidation, "asset and owner must be set")
	}
	addr, _, err := solana.FindProgramAddress(
		[][]byte{owner[:], TokenProgramID[:], assetAddress[:]},
		AssociatedTokenProgramID,
	)
	if err != nil {
		return asset.Identity{}, errors.Wrapf(err, "failed deriving holding account for [%s:%s]", assetAddress, owner)
	}
	return FromPublicKey(addr), nil
}

// MetadataAccount derives the metadata record address of the given asset
func MetadataAccount(assetAddress asset.Identity) (asset.Identity, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{metadataSeed, TokenMetadataProgramID[:], assetAddress[:]},
		TokenMetadataProgramID,
	)
	if err != nil {
		return asset.Identity{}, errors.Wrapf(err, "failed deriving metadata account for [%s]", assetAddress)
	}
	return FromPublicKey(addr), nil
}

// EditionAccount derives the edition record address of the given asset
func EditionAccount(assetAddress asset.Identity) (asset.Identity, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{metadataSeed, TokenMetadataProgramID[:], assetAddress[:], editionSeed},
		TokenMetadataProgramID,
	)
	if err != nil {
		return asset.Identity{}, errors.Wrapf(err, "failed deriving edition account for [%s]", assetAddress)
	}
	return FromPublicKey(addr), nil
}

// Resolver derives account addresses and checks their existence on the ledger
type Resolver struct {
	ledger   driver.Ledger
	existing *cache.Cache[bool]
}

// NewResolver returns a resolver reading from the passed ledger.
// Only positive existence answers are cached: accounts are never closed by this system.
func NewResolver(ledger driver.Ledger) (*Resolver, error) {
	c, err := cache.New[bool](existenceCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating existence cache")
	}
	return &Resolver{ledger: ledger, existing: c}, nil
}

func (r *Resolver) HoldingAccount(assetAddress, owner asset.Identity) (asset.Identity, error) {
	return HoldingAccount(assetAddress, owner)
}

func (r *Resolver) MetadataAccount(assetAddress asset.Identity) (asset.Identity, error) {
	return MetadataAccount(assetAddress)
}

func (r *Resolver) EditionAccount(assetAddress asset.Identity) (asset.Identity, error) {
	return EditionAccount(assetAddress)
}

// Exists tells whether the account exists. A false answer is advisory and may be stale
// by the time a transaction lands.
func (r *Resolver) Exists(ctx context.Context, address asset.Identity) (bool, error) {
	exists, cached, err := r.existing.GetOrLoad(address.String(), func() (bool, error) {
		return r.ledger.AccountExists(ctx, address)
	}, func(v bool) bool { return v })
	if err != nil {
		return false, errors.WithMessagef(err, "failed checking existence of [%s]", address)
	}
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("account [%s] exists [%v], cached [%v]", address, exists, cached)
	}
	return exists, nil
}

// Close releases the resources held by the resolver
func (r *Resolver) Close() {
	r.existing.Close()
}
