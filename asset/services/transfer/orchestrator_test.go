/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transfer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/asset/services/fees"
	"github.com/nftmint-labs/asset-sdk/asset/services/finality"
	"github.com/nftmint-labs/asset-sdk/asset/services/issuance"
	"github.com/nftmint-labs/asset-sdk/asset/services/network/memory"
	"github.com/nftmint-labs/asset-sdk/asset/services/signer"
	"github.com/nftmint-labs/asset-sdk/asset/services/sigverify"
	"github.com/nftmint-labs/asset-sdk/asset/services/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// staleReads never sees an account, as a lagging replica would
type staleReads struct {
	*memory.Ledger
}

func (staleReads) AccountExists(context.Context, asset.Identity) (bool, error) {
	return false, nil
}

type env struct {
	ledger   *memory.Ledger
	issuer   *signer.KeyPair
	w1, w2   *signer.KeyPair
	keyring  *signer.Keyring
	issuance *issuance.Orchestrator
	transfer *transfer.Orchestrator
}

func newEnv(t *testing.T, reads driver.Ledger, l *memory.Ledger) *env {
	t.Helper()
	e := &env{ledger: l}
	var err error
	e.issuer, err = signer.NewKeyPair()
	require.NoError(t, err)
	e.w1, err = signer.NewKeyPair()
	require.NoError(t, err)
	e.w2, err = signer.NewKeyPair()
	require.NoError(t, err)
	l.Fund(e.issuer.Identity(), 5*asset.LamportsPerSOL)

	resolver, err := accounts.NewResolver(reads)
	require.NoError(t, err)
	t.Cleanup(resolver.Close)
	estimator, err := fees.NewEstimator(l, fees.DefaultConfig())
	require.NoError(t, err)
	watcher := finality.NewWatcher(l, finality.Config{InitialInterval: time.Millisecond, MaxInterval: 10 * time.Millisecond}, noop.NewTracerProvider())
	sc := signer.NewContext(e.issuer, l)
	e.keyring = signer.NewKeyring(e.w1)

	e.issuance = issuance.NewOrchestrator(sigverify.NewVerifier(), nil, resolver, estimator, sc, l, watcher, nil, time.Second, noop.NewTracerProvider())
	e.transfer = transfer.NewOrchestrator(resolver, estimator, sc, reads, watcher, e.keyring, time.Second, noop.NewTracerProvider())
	return e
}

func (e *env) issueColosseum(t *testing.T) *asset.Record {
	t.Helper()
	msg := []byte("issue Ancient Colosseum")
	sig, err := e.w1.Sign(msg)
	require.NoError(t, err)
	record, outcome, err := e.issuance.Issue(context.Background(), asset.Descriptor{
		Name:   "Ancient Colosseum",
		Symbol: "COLO",
		URI:    "https://example.com/colosseum.json",
	}, e.w1.Identity(), &asset.SignedAssertion{Message: msg, Signature: sig, Identity: e.w1.Identity()})
	require.NoError(t, err)
	require.Equal(t, asset.Finalized, outcome.State)
	return record
}

func TestColosseum(t *testing.T) {
	l := memory.NewLedger()
	e := newEnv(t, l, l)
	ctx := context.Background()

	record := e.issueColosseum(t)
	balance, err := l.Balance(ctx, record.HoldingAccount)
	require.NoError(t, err)
	require.Equal(t, uint64(1), balance)

	w2Holding, err := accounts.HoldingAccount(record.Address, e.w2.Identity())
	require.NoError(t, err)
	exists, err := l.AccountExists(ctx, w2Holding)
	require.NoError(t, err)
	require.False(t, exists)

	outcome, err := e.transfer.Transfer(ctx, record.Address, e.w1.Identity(), e.w2.Identity())
	require.NoError(t, err)
	assert.Equal(t, asset.Finalized, outcome.State)
	assert.Equal(t, uint64(1), outcome.Balance)
	assert.Equal(t, map[asset.Identity]uint64{w2Holding: 1, record.HoldingAccount: 0}, outcome.Balances)

	owner, ok := l.HoldingOwner(w2Holding)
	require.True(t, ok)
	assert.Equal(t, e.w2.Identity(), owner)

	// W1 no longer holds the unit
	_, err = e.transfer.Transfer(ctx, record.Address, e.w1.Identity(), e.w2.Identity())
	require.ErrorIs(t, err, asset.ErrSourceEmpty)
	assert.Equal(t, asset.SourceEmpty, asset.KindOf(err))

	// no custody of W2
	_, err = e.transfer.Transfer(ctx, record.Address, e.w2.Identity(), e.w1.Identity())
	require.ErrorIs(t, err, asset.ErrUnauthorized)

	// once W2 is in custody the unit can move back to the existing W1 account
	e.keyring.Add(e.w2)
	outcome, err = e.transfer.Transfer(ctx, record.Address, e.w2.Identity(), e.w1.Identity())
	require.NoError(t, err)
	assert.Equal(t, asset.Finalized, outcome.State)
}

func TestTransferValidation(t *testing.T) {
	l := memory.NewLedger()
	e := newEnv(t, l, l)
	record := e.issueColosseum(t)

	testCases := []struct {
		name        string
		asset       asset.Identity
		source      asset.Identity
		destination asset.Identity
		field       string
	}{
		{name: "same owner", asset: record.Address, source: e.w1.Identity(), destination: e.w1.Identity(), field: "destination"},
		{name: "no asset", source: e.w1.Identity(), destination: e.w2.Identity(), field: "asset"},
		{name: "no source", asset: record.Address, destination: e.w2.Identity(), field: "source"},
		{name: "no destination", asset: record.Address, source: e.w1.Identity(), field: "destination"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.transfer.Transfer(context.Background(), tc.asset, tc.source, tc.destination)
			require.ErrorIs(t, err, asset.ErrValidation)
			var te *asset.TransferError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tc.field, te.Field)
		})
	}
}

func TestTransferUnknownAssetIsSourceEmpty(t *testing.T) {
	l := memory.NewLedger()
	e := newEnv(t, l, l)
	unknown, err := signer.NewKeyPair()
	require.NoError(t, err)

	_, err = e.transfer.Transfer(context.Background(), unknown.Identity(), e.w1.Identity(), e.w2.Identity())
	require.ErrorIs(t, err, asset.ErrSourceEmpty)
}

func TestTransferRetryAfterConcurrentCreation(t *testing.T) {
	l := memory.NewLedger()
	e := newEnv(t, staleReads{l}, l)
	ctx := context.Background()
	record := e.issueColosseum(t)

	// first attempt fails for an unrelated reason
	l.FailNext("Transaction simulation failed: Blockhash not found")
	_, err := e.transfer.Transfer(ctx, record.Address, e.w1.Identity(), e.w2.Identity())
	require.ErrorIs(t, err, asset.ErrSubmissionFailed)
	var te *asset.TransferError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Transaction simulation failed: Blockhash not found", te.Reason)

	// meanwhile the destination account lands
	dst, err := l.CreateHoldingAccount(record.Address, e.w2.Identity())
	require.NoError(t, err)

	// the retry still asks for the creation, which must not fail
	outcome, err := e.transfer.Transfer(ctx, record.Address, e.w1.Identity(), e.w2.Identity())
	require.NoError(t, err)
	assert.Equal(t, asset.Finalized, outcome.State)
	balance, err := l.Balance(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)
}

func TestTransferRejected(t *testing.T) {
	l := memory.NewLedger()
	e := newEnv(t, l, l)
	record := e.issueColosseum(t)

	l.RejectNext("insufficient funds for fee")
	_, err := e.transfer.Transfer(context.Background(), record.Address, e.w1.Identity(), e.w2.Identity())
	require.ErrorIs(t, err, asset.ErrSubmissionFailed)
	var te *asset.TransferError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "insufficient funds for fee", te.Reason)
}
