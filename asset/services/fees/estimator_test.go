/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fees_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/driver/mock"
	"github.com/nftmint-labs/asset-sdk/asset/services/fees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rent mimics the ledger rent formula: (128 + size) * 3480 * 2
func rent(_ context.Context, size uint64) (uint64, error) {
	return (128 + size) * 3480 * 2, nil
}

func newLedger() *mock.Ledger {
	l := &mock.Ledger{}
	l.RentExemptionMinimumCalls(rent)
	l.LamportsPerSignatureReturns(5000, nil)
	return l
}

var treasury = asset.Identity{9, 9, 9}

func withTreasury() fees.Config {
	c := fees.DefaultConfig()
	c.Treasury = treasury.String()
	return c
}

func TestEstimateIssuance(t *testing.T) {
	e, err := fees.NewEstimator(newLedger(), withTreasury())
	require.NoError(t, err)

	fb, err := e.EstimateIssuance(context.Background())
	require.NoError(t, err)

	require.Len(t, fb.Accounts, 4)
	assert.Equal(t, asset.AssetAccount, fb.Accounts[0].Kind)
	assert.Equal(t, uint64(1461600), fb.Accounts[0].Lamports)
	assert.Equal(t, uint64(2039280), fb.Accounts[3].Lamports)
	assert.Equal(t, uint64(10000), fb.NetworkFee)

	subtotal := fb.RentSubtotal()
	assert.Equal(t, subtotal*500/10000, fb.PlatformSurcharge)
	assert.Equal(t, subtotal+fb.NetworkFee+fb.PlatformSurcharge, fb.Total)
	assert.Equal(t, uint64(500), fb.SurchargeBasisPoints)
	assert.True(t, fb.TotalSOL().GreaterThan(asset.ToSOL(0)))

	again, err := e.EstimateIssuance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fb, again)
}

func TestEstimateTransfer(t *testing.T) {
	testCases := []struct {
		name              string
		createDestination bool
		accounts          int
		total             uint64
	}{
		{name: "existing destination", createDestination: false, accounts: 0, total: 10000},
		{name: "new destination", createDestination: true, accounts: 1, total: 2039280 + 10000 + 101964},
	}
	e, err := fees.NewEstimator(newLedger(), withTreasury())
	require.NoError(t, err)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fb, err := e.EstimateTransfer(context.Background(), tc.createDestination)
			require.NoError(t, err)
			assert.Len(t, fb.Accounts, tc.accounts)
			assert.Equal(t, tc.total, fb.Total)
		})
	}
}

func TestEstimatorConfig(t *testing.T) {
	l := newLedger()
	e, err := fees.NewEstimator(l, fees.Config{SurchargeBasisPoints: 0, LamportsPerSignature: 7000})
	require.NoError(t, err)
	fb, err := e.EstimateIssuance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(14000), fb.NetworkFee)
	assert.Zero(t, fb.PlatformSurcharge)
	assert.Equal(t, 0, l.LamportsPerSignatureCallCount())

	_, err = fees.NewEstimator(l, fees.Config{SurchargeBasisPoints: 10001})
	require.ErrorIs(t, err, asset.ErrValidation)

	_, err = fees.NewEstimator(l, fees.Config{SurchargeBasisPoints: 500, Treasury: "not-an-identity"})
	require.ErrorIs(t, err, asset.ErrValidation)
}

func TestSurchargeRequiresTreasury(t *testing.T) {
	e, err := fees.NewEstimator(newLedger(), fees.DefaultConfig())
	require.NoError(t, err)
	fb, err := e.EstimateIssuance(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fb.PlatformSurcharge)
	assert.Zero(t, fb.SurchargeBasisPoints)
	assert.Equal(t, fb.RentSubtotal()+fb.NetworkFee, fb.Total)
	assert.True(t, e.Treasury().IsNone())
	assert.Nil(t, e.Surcharge(asset.Identity{1}, fb))

	e, err = fees.NewEstimator(newLedger(), withTreasury())
	require.NoError(t, err)
	fb, err = e.EstimateIssuance(context.Background())
	require.NoError(t, err)
	ix := e.Surcharge(asset.Identity{1}, fb)
	require.NotNil(t, ix)
	pay, ok := ix.(*driver.PayFee)
	require.True(t, ok)
	assert.Equal(t, treasury, pay.Treasury)
	assert.Equal(t, asset.Identity{1}, pay.Payer)
	assert.Equal(t, fb.PlatformSurcharge, pay.Lamports)
}

func TestEstimateLedgerFailure(t *testing.T) {
	l := &mock.Ledger{}
	l.RentExemptionMinimumReturns(0, errors.New("connection refused"))
	e, err := fees.NewEstimator(l, fees.DefaultConfig())
	require.NoError(t, err)
	_, err = e.EstimateIssuance(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
