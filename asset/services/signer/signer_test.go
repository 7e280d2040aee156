/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/driver/mock"
	"github.com/nftmint-labs/asset-sdk/asset/services/signer"
	"github.com/nftmint-labs/asset-sdk/asset/services/sigverify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPair(t *testing.T) {
	kp, err := signer.NewKeyPair()
	require.NoError(t, err)
	other, err := signer.NewKeyPair()
	require.NoError(t, err)
	assert.NotEqual(t, kp.Identity(), other.Identity())

	sig, err := kp.Sign([]byte("hello"))
	require.NoError(t, err)
	assert.True(t, sigverify.Verify([]byte("hello"), sig, kp.Identity()))
	assert.False(t, sigverify.Verify([]byte("hello"), sig, other.Identity()))
	assert.NotContains(t, fmt.Sprintf("%#v", kp), "0x")

	_, err = signer.FromPrivateKey([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestKeyring(t *testing.T) {
	kp, err := signer.NewKeyPair()
	require.NoError(t, err)
	k := signer.NewKeyring(kp)

	s, err := k.Signer(kp.Identity())
	require.NoError(t, err)
	assert.Equal(t, kp.Identity(), s.Identity())

	other, err := signer.NewKeyPair()
	require.NoError(t, err)
	_, err = k.Signer(other.Identity())
	require.ErrorIs(t, err, driver.ErrNoAuthority)
}

func TestContextSubmit(t *testing.T) {
	issuer, err := signer.NewKeyPair()
	require.NoError(t, err)
	mintKey, err := signer.NewKeyPair()
	require.NoError(t, err)

	ledger := &mock.Ledger{}
	ledger.SequenceReturns(driver.Sequence{Value: 7}, nil)
	ledger.SubmitReturns("tx1", nil)
	c := signer.NewContext(issuer, ledger)
	assert.Equal(t, issuer.Identity(), c.Issuer())

	ixs := []driver.Instruction{&driver.CreateAssetAccount{Payer: issuer.Identity(), Asset: mintKey.Identity()}}
	id, err := c.Submit(context.Background(), ixs, mintKey)
	require.NoError(t, err)
	assert.Equal(t, "tx1", id)

	_, tx, signers := ledger.SubmitArgsForCall(0)
	assert.Equal(t, issuer.Identity(), tx.Payer)
	assert.Equal(t, uint64(7), tx.Sequence.Value)
	require.Len(t, signers, 2)
	assert.Equal(t, issuer.Identity(), signers[0].Identity())

	// the asset key must co-sign its own creation
	_, err = c.Submit(context.Background(), ixs)
	require.ErrorIs(t, err, asset.ErrUnauthorized)
	assert.Equal(t, 1, ledger.SubmitCallCount())

	_, err = c.Submit(context.Background(), nil)
	require.ErrorIs(t, err, asset.ErrValidation)
}

func TestContextSerializesSubmissions(t *testing.T) {
	issuer, err := signer.NewKeyPair()
	require.NoError(t, err)

	var mu sync.Mutex
	var next uint64
	var trace []string
	ledger := &mock.Ledger{}
	ledger.SequenceCalls(func(context.Context, asset.Identity) (driver.Sequence, error) {
		mu.Lock()
		defer mu.Unlock()
		trace = append(trace, "seq")
		return driver.Sequence{Value: next}, nil
	})
	ledger.SubmitCalls(func(_ context.Context, tx *driver.Transaction, _ []driver.Signer) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		trace = append(trace, "submit")
		if tx.Sequence.Value != next {
			return "", &driver.RejectionError{Reason: "stale sequence"}
		}
		next++
		return fmt.Sprintf("tx%d", tx.Sequence.Value), nil
	})
	c := signer.NewContext(issuer, ledger)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Submit(context.Background(), []driver.Instruction{&driver.MintUnits{Authority: issuer.Identity(), Amount: 1}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(20), next)
	for i := 0; i < len(trace); i += 2 {
		assert.Equal(t, []string{"seq", "submit"}, trace[i:i+2])
	}
}
