/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memory_test

import (
	"context"
	"testing"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/asset/services/network/memory"
	"github.com/nftmint-labs/asset-sdk/asset/services/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ledger  *memory.Ledger
	issuer  *signer.KeyPair
	owner   *signer.KeyPair
	mint    *signer.KeyPair
	holding asset.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ledger: memory.NewLedger()}
	var err error
	f.issuer, err = signer.NewKeyPair()
	require.NoError(t, err)
	f.owner, err = signer.NewKeyPair()
	require.NoError(t, err)
	f.mint, err = signer.NewKeyPair()
	require.NoError(t, err)
	f.holding, err = accounts.HoldingAccount(f.mint.Identity(), f.owner.Identity())
	require.NoError(t, err)
	f.ledger.Fund(f.issuer.Identity(), 10*asset.LamportsPerSOL)
	return f
}

func (f *fixture) issuance(t *testing.T) []driver.Instruction {
	t.Helper()
	issuer, mint := f.issuer.Identity(), f.mint.Identity()
	md, err := accounts.MetadataAccount(mint)
	require.NoError(t, err)
	ed, err := accounts.EditionAccount(mint)
	require.NoError(t, err)
	return []driver.Instruction{
		&driver.CreateAssetAccount{Payer: issuer, Asset: mint, Space: accounts.AssetAccountSize, Lamports: memory.RentExemptionMinimum(accounts.AssetAccountSize)},
		&driver.InitializeAsset{Asset: mint, MintAuthority: issuer, FreezeAuthority: issuer},
		&driver.CreateMetadata{Metadata: md, Asset: mint, MintAuthority: issuer, Payer: issuer, UpdateAuthority: issuer, Creator: f.owner.Identity(), Title: "Ancient Colosseum", Symbol: "COLO", URI: "https://example.com/colo.json", IsMutable: true},
		&driver.CreateHoldingAccount{Payer: issuer, Owner: f.owner.Identity(), Asset: mint, Account: f.holding},
		&driver.MintUnits{Asset: mint, Destination: f.holding, Authority: issuer, Amount: 1},
		&driver.FinalizeSupply{Edition: ed, Asset: mint, Metadata: md, UpdateAuthority: issuer, MintAuthority: issuer, Payer: issuer},
	}
}

func (f *fixture) submit(t *testing.T, ixs []driver.Instruction, signers ...driver.Signer) (string, error) {
	t.Helper()
	seq, err := f.ledger.Sequence(context.Background(), f.issuer.Identity())
	require.NoError(t, err)
	tx := &driver.Transaction{Payer: f.issuer.Identity(), Sequence: seq, Instructions: ixs}
	return f.ledger.Submit(context.Background(), tx, append([]driver.Signer{f.issuer}, signers...))
}

func (f *fixture) status(t *testing.T, id string) driver.TxStatus {
	t.Helper()
	st, err := f.ledger.Status(context.Background(), id)
	require.NoError(t, err)
	return st
}

func TestIssuance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before, err := f.ledger.Lamports(ctx, f.issuer.Identity())
	require.NoError(t, err)

	id, err := f.submit(t, f.issuance(t), f.mint)
	require.NoError(t, err)
	assert.Equal(t, driver.TxFinalized, f.status(t, id).State)

	balance, err := f.ledger.Balance(ctx, f.holding)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)
	assert.Equal(t, uint64(1), f.ledger.Supply(f.mint.Identity()))

	owner, ok := f.ledger.HoldingOwner(f.holding)
	require.True(t, ok)
	assert.Equal(t, f.owner.Identity(), owner)

	md, ok := f.ledger.Metadata(f.mint.Identity())
	require.True(t, ok)
	assert.Equal(t, "Ancient Colosseum", md.Name)
	assert.Equal(t, f.owner.Identity(), md.Creator)
	assert.Equal(t, f.issuer.Identity(), md.UpdateAuthority)

	after, err := f.ledger.Lamports(ctx, f.issuer.Identity())
	require.NoError(t, err)
	rent := memory.RentExemptionMinimum(82) + memory.RentExemptionMinimum(679) + memory.RentExemptionMinimum(282) + memory.RentExemptionMinimum(165)
	assert.Equal(t, before-rent-2*memory.DefaultLamportsPerSignature, after)

	// supply is capped
	id, err = f.submit(t, []driver.Instruction{
		&driver.MintUnits{Asset: f.mint.Identity(), Destination: f.holding, Authority: f.issuer.Identity(), Amount: 1},
	})
	require.NoError(t, err)
	st := f.status(t, id)
	assert.Equal(t, driver.TxFailed, st.State)
	assert.Contains(t, st.Reason, memory.ReasonAuthorityMismatch)
	assert.Equal(t, uint64(1), f.ledger.Supply(f.mint.Identity()))
}

func TestSubmitRejections(t *testing.T) {
	f := newFixture(t)

	_, err := f.submit(t, f.issuance(t))
	var rejection *driver.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Reason, "missing signature")

	tx := &driver.Transaction{Payer: f.issuer.Identity(), Sequence: driver.Sequence{Value: 3}, Instructions: f.issuance(t)}
	_, err = f.ledger.Submit(context.Background(), tx, []driver.Signer{f.issuer, f.mint})
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "stale sequence", rejection.Reason)

	f.ledger.RejectNext("blockhash not found")
	_, err = f.submit(t, f.issuance(t), f.mint)
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "blockhash not found", rejection.Reason)

	poor := newFixture(t)
	poor.ledger = memory.NewLedger()
	_, err = poor.submit(t, poor.issuance(t), poor.mint)
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "insufficient funds for fee", rejection.Reason)
}

func TestFailedTransactionIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before, err := f.ledger.Lamports(ctx, f.issuer.Identity())
	require.NoError(t, err)

	f.ledger.FailNext("custom program error: 0x0")
	id, err := f.submit(t, f.issuance(t), f.mint)
	require.NoError(t, err)
	st := f.status(t, id)
	assert.Equal(t, driver.TxFailed, st.State)
	assert.Equal(t, "custom program error: 0x0", st.Reason)

	exists, err := f.ledger.AccountExists(ctx, f.mint.Identity())
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = f.ledger.Balance(ctx, f.holding)
	require.ErrorIs(t, err, driver.ErrAccountNotFound)

	after, err := f.ledger.Lamports(ctx, f.issuer.Identity())
	require.NoError(t, err)
	assert.Equal(t, before-2*memory.DefaultLamportsPerSignature, after)

	seq, err := f.ledger.Sequence(ctx, f.issuer.Identity())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq.Value)
}

func TestCreateHoldingAccountIsIdempotent(t *testing.T) {
	f := newFixture(t)
	id, err := f.submit(t, f.issuance(t), f.mint)
	require.NoError(t, err)
	require.Equal(t, driver.TxFinalized, f.status(t, id).State)

	recipient, err := signer.NewKeyPair()
	require.NoError(t, err)
	dst, err := f.ledger.CreateHoldingAccount(f.mint.Identity(), recipient.Identity())
	require.NoError(t, err)

	create := &driver.CreateHoldingAccount{Payer: f.issuer.Identity(), Owner: recipient.Identity(), Asset: f.mint.Identity(), Account: dst}
	transfer := &driver.TransferUnits{Asset: f.mint.Identity(), Source: f.holding, Destination: dst, Authority: f.owner.Identity(), Amount: 1}
	id, err = f.submit(t, []driver.Instruction{create, transfer}, f.owner)
	require.NoError(t, err)
	require.Equal(t, driver.TxFinalized, f.status(t, id).State)

	balance, err := f.ledger.Balance(context.Background(), dst)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	// a holding account at a non derived address is refused
	other := &driver.CreateHoldingAccount{Payer: f.issuer.Identity(), Owner: f.owner.Identity(), Asset: f.mint.Identity(), Account: dst}
	id, err = f.submit(t, []driver.Instruction{other})
	require.NoError(t, err)
	st := f.status(t, id)
	assert.Equal(t, driver.TxFailed, st.State)
	assert.Contains(t, st.Reason, memory.ReasonInvalidAddress)
}

func TestConfirmations(t *testing.T) {
	f := newFixture(t)
	f.ledger.SetConfirmations(2)
	id, err := f.submit(t, f.issuance(t), f.mint)
	require.NoError(t, err)
	assert.Equal(t, driver.TxProcessed, f.status(t, id).State)
	assert.Equal(t, driver.TxProcessed, f.status(t, id).State)
	assert.Equal(t, driver.TxFinalized, f.status(t, id).State)
	assert.Equal(t, driver.TxUnknown, f.status(t, "unknown").State)
}

func TestPayFee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	treasury := f.mint.Identity()

	before, err := f.ledger.Lamports(ctx, f.issuer.Identity())
	require.NoError(t, err)
	id, err := f.submit(t, []driver.Instruction{&driver.PayFee{Payer: f.issuer.Identity(), Treasury: treasury, Lamports: 101964}})
	require.NoError(t, err)
	assert.Equal(t, driver.TxFinalized, f.status(t, id).State)

	after, err := f.ledger.Lamports(ctx, f.issuer.Identity())
	require.NoError(t, err)
	assert.Equal(t, before-101964-memory.DefaultLamportsPerSignature, after)
	collected, err := f.ledger.Lamports(ctx, treasury)
	require.NoError(t, err)
	assert.Equal(t, uint64(101964), collected)

	id, err = f.submit(t, []driver.Instruction{&driver.PayFee{Payer: f.issuer.Identity(), Treasury: treasury, Lamports: 100 * asset.LamportsPerSOL}})
	require.NoError(t, err)
	st := f.status(t, id)
	assert.Equal(t, driver.TxFailed, st.State)
	assert.Contains(t, st.Reason, memory.ReasonInsufficientLamports)
	collected, err = f.ledger.Lamports(ctx, treasury)
	require.NoError(t, err)
	assert.Equal(t, uint64(101964), collected)
}
