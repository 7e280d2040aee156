/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

import "github.com/nftmint-labs/asset-sdk/asset"

// Instruction is a single ledger operation. Every instruction names its payer and its
// owner or authority in distinct fields, the payer never becomes the recorded owner.
type Instruction interface {
	// Name identifies the instruction in logs and diagnostics
	Name() string
	// Signers returns the identities whose signature the instruction requires
	Signers() []asset.Identity
}

// CreateAssetAccount allocates the asset (mint) account.
// The new account must co-sign its own creation.
type CreateAssetAccount struct {
	Payer    asset.Identity
	Asset    asset.Identity
	Lamports uint64
	Space    uint64
}

func (i *CreateAssetAccount) Name() string { return "CreateAssetAccount" }

func (i *CreateAssetAccount) Signers() []asset.Identity { return []asset.Identity{i.Payer, i.Asset} }

// InitializeAsset initializes the asset account with zero decimals
type InitializeAsset struct {
	Asset           asset.Identity
	Decimals        uint8
	MintAuthority   asset.Identity
	FreezeAuthority asset.Identity
}

func (i *InitializeAsset) Name() string { return "InitializeAsset" }

func (i *InitializeAsset) Signers() []asset.Identity { return nil }

// CreateMetadata creates the metadata record bound to the asset.
// Creator is the recorded owner identity, UpdateAuthority is the issuer.
type CreateMetadata struct {
	Metadata        asset.Identity
	Asset           asset.Identity
	MintAuthority   asset.Identity
	Payer           asset.Identity
	UpdateAuthority asset.Identity
	Creator         asset.Identity
	Title           string
	Symbol          string
	URI             string
	IsMutable       bool
}

func (i *CreateMetadata) Name() string { return "CreateMetadata" }

func (i *CreateMetadata) Signers() []asset.Identity {
	return []asset.Identity{i.MintAuthority, i.Payer, i.UpdateAuthority}
}

// CreateHoldingAccount creates the holding account of Owner for Asset.
// It is a no-op if the account already exists.
type CreateHoldingAccount struct {
	Payer   asset.Identity
	Owner   asset.Identity
	Asset   asset.Identity
	Account asset.Identity
}

func (i *CreateHoldingAccount) Name() string { return "CreateHoldingAccount" }

func (i *CreateHoldingAccount) Signers() []asset.Identity { return []asset.Identity{i.Payer} }

// MintUnits mints Amount units into Destination
type MintUnits struct {
	Asset       asset.Identity
	Destination asset.Identity
	Authority   asset.Identity
	Amount      uint64
}

func (i *MintUnits) Name() string { return "MintUnits" }

func (i *MintUnits) Signers() []asset.Identity { return []asset.Identity{i.Authority} }

// FinalizeSupply creates the edition record that caps the supply to what has been minted.
// After it lands no further units can be minted for the asset.
type FinalizeSupply struct {
	Edition         asset.Identity
	Asset           asset.Identity
	Metadata        asset.Identity
	UpdateAuthority asset.Identity
	MintAuthority   asset.Identity
	Payer           asset.Identity
	MaxSupply       uint64
}

func (i *FinalizeSupply) Name() string { return "FinalizeSupply" }

func (i *FinalizeSupply) Signers() []asset.Identity {
	return []asset.Identity{i.UpdateAuthority, i.MintAuthority, i.Payer}
}

// TransferUnits moves Amount units from Source to Destination, authorized by the source owner
type TransferUnits struct {
	Asset       asset.Identity
	Source      asset.Identity
	Destination asset.Identity
	Authority   asset.Identity
	Amount      uint64
	Decimals    uint8
}

func (i *TransferUnits) Name() string { return "TransferUnits" }

func (i *TransferUnits) Signers() []asset.Identity { return []asset.Identity{i.Authority} }

// PayFee moves Lamports from Payer to Treasury
type PayFee struct {
	Payer    asset.Identity
	Treasury asset.Identity
	Lamports uint64
}

func (i *PayFee) Name() string { return "PayFee" }

func (i *PayFee) Signers() []asset.Identity { return []asset.Identity{i.Payer} }
