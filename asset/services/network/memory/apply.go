/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memory

import (
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/pkg/errors"
)

// Diagnostics reported by failed transactions
const (
	ReasonAccountInUse         = "account already in use"
	ReasonInsufficientLamports = "insufficient lamports"
	ReasonInsufficientRent     = "insufficient funds for rent"
	ReasonInvalidAccount       = "invalid account data for instruction"
	ReasonInvalidAddress       = "provided seeds do not result in a valid address"
	ReasonAlreadyInitialized   = "account already initialized"
	ReasonAuthorityMismatch    = "owner does not match"
	ReasonMintMismatch         = "account not associated with this mint"
	ReasonInsufficientFunds    = "insufficient funds"
	ReasonDecimalsMismatch     = "mint decimals mismatch"
	ReasonEditionSupply        = "editions require a supply of exactly one"
)

func (l *Ledger) apply(s state, tx *driver.Transaction) error {
	for i, ix := range tx.Instructions {
		var err error
		switch ix := ix.(type) {
		case *driver.CreateAssetAccount:
			err = createAssetAccount(s, ix)
		case *driver.InitializeAsset:
			err = initializeAsset(s, ix)
		case *driver.CreateMetadata:
			err = createMetadata(s, ix)
		case *driver.CreateHoldingAccount:
			err = createHoldingAccount(s, ix)
		case *driver.MintUnits:
			err = mintUnits(s, ix)
		case *driver.FinalizeSupply:
			err = finalizeSupply(s, ix)
		case *driver.TransferUnits:
			err = transferUnits(s, ix)
		case *driver.PayFee:
			err = payFee(s, ix)
		default:
			err = errors.Errorf("unsupported instruction [%s]", ix.Name())
		}
		if err != nil {
			return errors.WithMessagef(err, "instruction %d [%s]", i, ix.Name())
		}
	}
	return nil
}

func allocate(s state, payer, address asset.Identity, size, lamports uint64) (*account, error) {
	if _, ok := s[address]; ok {
		return nil, errors.New(ReasonAccountInUse)
	}
	if lamports < RentExemptionMinimum(size) {
		return nil, errors.New(ReasonInsufficientRent)
	}
	p, ok := s[payer]
	if !ok || p.lamports < lamports {
		return nil, errors.New(ReasonInsufficientLamports)
	}
	p.lamports -= lamports
	a := &account{lamports: lamports, size: size}
	s[address] = a
	return a, nil
}

func assetOf(s state, address asset.Identity) (*assetState, error) {
	a, ok := s[address]
	if !ok || a.asset == nil {
		return nil, errors.New(ReasonInvalidAccount)
	}
	return a.asset, nil
}

func createAssetAccount(s state, ix *driver.CreateAssetAccount) error {
	_, err := allocate(s, ix.Payer, ix.Asset, ix.Space, ix.Lamports)
	return err
}

func initializeAsset(s state, ix *driver.InitializeAsset) error {
	a, ok := s[ix.Asset]
	if !ok || a.size != accounts.AssetAccountSize {
		return errors.New(ReasonInvalidAccount)
	}
	if a.asset != nil {
		return errors.New(ReasonAlreadyInitialized)
	}
	a.asset = &assetState{
		decimals:        ix.Decimals,
		mintAuthority:   ix.MintAuthority,
		freezeAuthority: ix.FreezeAuthority,
	}
	return nil
}

func createMetadata(s state, ix *driver.CreateMetadata) error {
	st, err := assetOf(s, ix.Asset)
	if err != nil {
		return err
	}
	if st.mintAuthority != ix.MintAuthority {
		return errors.New(ReasonAuthorityMismatch)
	}
	expected, err := accounts.MetadataAccount(ix.Asset)
	if err != nil || expected != ix.Metadata {
		return errors.New(ReasonInvalidAddress)
	}
	a, err := allocate(s, ix.Payer, ix.Metadata, accounts.MetadataSize, RentExemptionMinimum(accounts.MetadataSize))
	if err != nil {
		return err
	}
	a.metadata = &MetadataInfo{
		Asset:           ix.Asset,
		Name:            ix.Title,
		Symbol:          ix.Symbol,
		URI:             ix.URI,
		Creator:         ix.Creator,
		UpdateAuthority: ix.UpdateAuthority,
		IsMutable:       ix.IsMutable,
	}
	return nil
}

func createHoldingAccount(s state, ix *driver.CreateHoldingAccount) error {
	expected, err := accounts.HoldingAccount(ix.Asset, ix.Owner)
	if err != nil || expected != ix.Account {
		return errors.New(ReasonInvalidAddress)
	}
	if existing, ok := s[ix.Account]; ok {
		if existing.holding == nil || existing.holding.owner != ix.Owner || existing.holding.asset != ix.Asset {
			return errors.New(ReasonAccountInUse)
		}
		return nil
	}
	if _, err := assetOf(s, ix.Asset); err != nil {
		return err
	}
	a, err := allocate(s, ix.Payer, ix.Account, accounts.HoldingAccountSize, RentExemptionMinimum(accounts.HoldingAccountSize))
	if err != nil {
		return err
	}
	a.holding = &holdingState{owner: ix.Owner, asset: ix.Asset}
	return nil
}

func holdingOf(s state, address, assetAddress asset.Identity) (*holdingState, error) {
	a, ok := s[address]
	if !ok || a.holding == nil {
		return nil, errors.New(ReasonInvalidAccount)
	}
	if a.holding.asset != assetAddress {
		return nil, errors.New(ReasonMintMismatch)
	}
	return a.holding, nil
}

func mintUnits(s state, ix *driver.MintUnits) error {
	st, err := assetOf(s, ix.Asset)
	if err != nil {
		return err
	}
	if st.mintAuthority != ix.Authority {
		return errors.New(ReasonAuthorityMismatch)
	}
	h, err := holdingOf(s, ix.Destination, ix.Asset)
	if err != nil {
		return err
	}
	h.balance += ix.Amount
	st.supply += ix.Amount
	return nil
}

// finalizeSupply hands the mint and freeze authorities over to the edition record,
// no further unit can be minted afterwards
func finalizeSupply(s state, ix *driver.FinalizeSupply) error {
	st, err := assetOf(s, ix.Asset)
	if err != nil {
		return err
	}
	if st.mintAuthority != ix.MintAuthority {
		return errors.New(ReasonAuthorityMismatch)
	}
	md, ok := s[ix.Metadata]
	if !ok || md.metadata == nil || md.metadata.Asset != ix.Asset {
		return errors.New(ReasonInvalidAccount)
	}
	if md.metadata.UpdateAuthority != ix.UpdateAuthority {
		return errors.New(ReasonAuthorityMismatch)
	}
	expected, err := accounts.EditionAccount(ix.Asset)
	if err != nil || expected != ix.Edition {
		return errors.New(ReasonInvalidAddress)
	}
	if st.supply != 1 {
		return errors.New(ReasonEditionSupply)
	}
	a, err := allocate(s, ix.Payer, ix.Edition, accounts.EditionSize, RentExemptionMinimum(accounts.EditionSize))
	if err != nil {
		return err
	}
	a.edition = &editionState{maxSupply: ix.MaxSupply}
	st.mintAuthority = ix.Edition
	st.freezeAuthority = ix.Edition
	return nil
}

func transferUnits(s state, ix *driver.TransferUnits) error {
	st, err := assetOf(s, ix.Asset)
	if err != nil {
		return err
	}
	if st.decimals != ix.Decimals {
		return errors.New(ReasonDecimalsMismatch)
	}
	src, err := holdingOf(s, ix.Source, ix.Asset)
	if err != nil {
		return err
	}
	if src.owner != ix.Authority {
		return errors.New(ReasonAuthorityMismatch)
	}
	dst, err := holdingOf(s, ix.Destination, ix.Asset)
	if err != nil {
		return err
	}
	if src.balance < ix.Amount {
		return errors.New(ReasonInsufficientFunds)
	}
	src.balance -= ix.Amount
	dst.balance += ix.Amount
	return nil
}

func payFee(s state, ix *driver.PayFee) error {
	p, ok := s[ix.Payer]
	if !ok || p.lamports < ix.Lamports {
		return errors.New(ReasonInsufficientLamports)
	}
	t, ok := s[ix.Treasury]
	if !ok {
		t = &account{}
		s[ix.Treasury] = t
	}
	p.lamports -= ix.Lamports
	t.lamports += ix.Lamports
	return nil
}
