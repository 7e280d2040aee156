/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package solana

import (
	"bytes"
	errors2 "errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/pkg/errors"
)

// Token metadata program instruction discriminators
const (
	createMetadataAccountV3 uint8 = 33
	createMasterEditionV3   uint8 = 17
	// createIdempotent is the associated token account instruction that tolerates an existing account
	createIdempotent uint8 = 1
)

var pk = accounts.ToPublicKey

// Compile turns a transaction into a ledger transaction, unsigned
func Compile(tx *driver.Transaction, recentBlockhash solana.Hash) (*solana.Transaction, error) {
	ixs := make([]solana.Instruction, 0, len(tx.Instructions))
	for i, ix := range tx.Instructions {
		compiled, err := compileInstruction(ix)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed compiling instruction %d [%s]", i, ix.Name())
		}
		ixs = append(ixs, compiled)
	}
	out, err := solana.NewTransaction(ixs, recentBlockhash, solana.TransactionPayer(pk(tx.Payer)))
	if err != nil {
		return nil, errors.Wrap(err, "failed building transaction")
	}
	return out, nil
}

func compileInstruction(ix driver.Instruction) (solana.Instruction, error) {
	switch ix := ix.(type) {
	case *driver.CreateAssetAccount:
		return system.NewCreateAccountInstruction(ix.Lamports, ix.Space, accounts.TokenProgramID, pk(ix.Payer), pk(ix.Asset)).Build(), nil
	case *driver.InitializeAsset:
		return token.NewInitializeMintInstruction(ix.Decimals, pk(ix.MintAuthority), pk(ix.FreezeAuthority), pk(ix.Asset), solana.SysVarRentPubkey).Build(), nil
	case *driver.CreateMetadata:
		return createMetadata(ix)
	case *driver.CreateHoldingAccount:
		return createHoldingAccount(ix), nil
	case *driver.MintUnits:
		return token.NewMintToInstruction(ix.Amount, pk(ix.Asset), pk(ix.Destination), pk(ix.Authority), nil).Build(), nil
	case *driver.FinalizeSupply:
		return finalizeSupply(ix)
	case *driver.TransferUnits:
		return token.NewTransferCheckedInstruction(ix.Amount, ix.Decimals, pk(ix.Source), pk(ix.Asset), pk(ix.Destination), pk(ix.Authority), nil).Build(), nil
	case *driver.PayFee:
		return system.NewTransferInstruction(ix.Lamports, pk(ix.Payer), pk(ix.Treasury)).Build(), nil
	}
	return nil, errors.Errorf("unsupported instruction [%s]", ix.Name())
}

func createHoldingAccount(ix *driver.CreateHoldingAccount) solana.Instruction {
	return solana.NewInstruction(
		accounts.AssociatedTokenProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(pk(ix.Payer), true, true),
			solana.NewAccountMeta(pk(ix.Account), true, false),
			solana.NewAccountMeta(pk(ix.Owner), false, false),
			solana.NewAccountMeta(pk(ix.Asset), false, false),
			solana.NewAccountMeta(accounts.SystemProgramID, false, false),
			solana.NewAccountMeta(accounts.TokenProgramID, false, false),
		},
		[]byte{createIdempotent},
	)
}

func createMetadata(ix *driver.CreateMetadata) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	err := errors2.Join(
		enc.WriteUint8(createMetadataAccountV3),
		// data
		enc.WriteString(ix.Title),
		enc.WriteString(ix.Symbol),
		enc.WriteString(ix.URI),
		enc.WriteUint16(0, bin.LE),
		// creators: the recorded owner, unverified, with the whole share
		enc.WriteBool(true),
		enc.WriteUint32(1, bin.LE),
		enc.WriteBytes(ix.Creator[:], false),
		enc.WriteBool(false),
		enc.WriteUint8(100),
		// no collection, no uses
		enc.WriteBool(false),
		enc.WriteBool(false),
		enc.WriteBool(ix.IsMutable),
		// no collection details
		enc.WriteBool(false),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed encoding metadata")
	}
	return solana.NewInstruction(
		accounts.TokenMetadataProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(pk(ix.Metadata), true, false),
			solana.NewAccountMeta(pk(ix.Asset), false, false),
			solana.NewAccountMeta(pk(ix.MintAuthority), false, true),
			solana.NewAccountMeta(pk(ix.Payer), true, true),
			solana.NewAccountMeta(pk(ix.UpdateAuthority), false, true),
			solana.NewAccountMeta(accounts.SystemProgramID, false, false),
			solana.NewAccountMeta(accounts.RentSysvarID, false, false),
		},
		buf.Bytes(),
	), nil
}

func finalizeSupply(ix *driver.FinalizeSupply) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	err := errors2.Join(
		enc.WriteUint8(createMasterEditionV3),
		enc.WriteBool(true),
		enc.WriteUint64(ix.MaxSupply, bin.LE),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed encoding edition")
	}
	return solana.NewInstruction(
		accounts.TokenMetadataProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(pk(ix.Edition), true, false),
			solana.NewAccountMeta(pk(ix.Asset), true, false),
			solana.NewAccountMeta(pk(ix.UpdateAuthority), false, true),
			solana.NewAccountMeta(pk(ix.MintAuthority), false, true),
			solana.NewAccountMeta(pk(ix.Payer), true, true),
			solana.NewAccountMeta(pk(ix.Metadata), true, false),
			solana.NewAccountMeta(accounts.TokenProgramID, false, false),
			solana.NewAccountMeta(accounts.SystemProgramID, false, false),
			solana.NewAccountMeta(accounts.RentSysvarID, false, false),
		},
		buf.Bytes(),
	), nil
}
