/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package accounts

import (
	"github.com/gagliardetto/solana-go"
	"github.com/nftmint-labs/asset-sdk/asset"
)

// Programs owning the accounts created by the issuance flow
var (
	SystemProgramID          = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	TokenProgramID           = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	TokenMetadataProgramID   = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	RentSysvarID             = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
	metadataSeed             = []byte("metadata")
	editionSeed              = []byte("edition")
)

// On-chain sizes of the accounts created by the issuance flow
const (
	AssetAccountSize   uint64 = 82
	HoldingAccountSize uint64 = 165
	MetadataSize       uint64 = 679
	EditionSize        uint64 = 282
)

// ToPublicKey converts an identity into a solana public key
func ToPublicKey(id asset.Identity) solana.PublicKey {
	return solana.PublicKey(id)
}

// FromPublicKey converts a solana public key into an identity
func FromPublicKey(pk solana.PublicKey) asset.Identity {
	return asset.Identity(pk)
}
