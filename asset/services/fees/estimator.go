/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fees

import (
	"context"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("fees")

const (
	// DefaultSurchargeBasisPoints is the platform surcharge applied over the rent subtotal (5%)
	DefaultSurchargeBasisPoints uint64 = 500
	// MaxSurchargeBasisPoints caps the surcharge to 100%
	MaxSurchargeBasisPoints uint64 = 10_000

	// IssuanceSignatures is the number of signatures an issuance carries: issuer and asset key
	IssuanceSignatures uint64 = 2
	// TransferSignatures is the number of signatures a transfer carries: issuer and source owner
	TransferSignatures uint64 = 2
)

var issuanceAccounts = []struct {
	kind asset.AccountKind
	size uint64
}{
	{asset.AssetAccount, accounts.AssetAccountSize},
	{asset.MetadataRecord, accounts.MetadataSize},
	{asset.EditionRecord, accounts.EditionSize},
	{asset.HoldingRecord, accounts.HoldingAccountSize},
}

// Config tunes the estimator
type Config struct {
	// SurchargeBasisPoints is the platform surcharge in basis points over the rent subtotal
	SurchargeBasisPoints uint64 `mapstructure:"surcharge_bps"`
	// LamportsPerSignature overrides the value read from the ledger when not zero
	LamportsPerSignature uint64 `mapstructure:"lamports_per_signature"`
	// Treasury is the identity collecting the surcharge. Without it no surcharge is charged.
	Treasury string `mapstructure:"treasury"`
}

// DefaultConfig returns the default estimator configuration
func DefaultConfig() Config {
	return Config{SurchargeBasisPoints: DefaultSurchargeBasisPoints}
}

// Estimator computes the cost of issuance and transfer operations from live ledger parameters
type Estimator struct {
	ledger   driver.Ledger
	config   Config
	treasury asset.Identity
}

func NewEstimator(ledger driver.Ledger, config Config) (*Estimator, error) {
	if config.SurchargeBasisPoints > MaxSurchargeBasisPoints {
		return nil, errors.Wrapf(asset.ErrValidation, "surcharge [%d] exceeds [%d] basis points", config.SurchargeBasisPoints, MaxSurchargeBasisPoints)
	}
	e := &Estimator{ledger: ledger, config: config}
	if len(config.Treasury) != 0 {
		treasury, err := asset.ParseIdentity(config.Treasury)
		if err != nil {
			return nil, errors.WithMessage(err, "invalid treasury")
		}
		e.treasury = treasury
	} else if config.SurchargeBasisPoints != 0 {
		logger.Warnf("no treasury configured, the surcharge of [%d] basis points is not charged", config.SurchargeBasisPoints)
		e.config.SurchargeBasisPoints = 0
	}
	return e, nil
}

// Treasury returns the identity collecting the surcharge, none if no surcharge is charged
func (e *Estimator) Treasury() asset.Identity {
	return e.treasury
}

// Surcharge returns the instruction collecting the surcharge of fb, nil if there is nothing to collect
func (e *Estimator) Surcharge(payer asset.Identity, fb asset.FeeBreakdown) driver.Instruction {
	if fb.PlatformSurcharge == 0 || e.treasury.IsNone() {
		return nil
	}
	return &driver.PayFee{Payer: payer, Treasury: e.treasury, Lamports: fb.PlatformSurcharge}
}

// EstimateIssuance returns the cost of issuing one asset, holding account creation included
func (e *Estimator) EstimateIssuance(ctx context.Context) (asset.FeeBreakdown, error) {
	costs := make([]asset.AccountCost, 0, len(issuanceAccounts))
	for _, a := range issuanceAccounts {
		cost, err := e.accountCost(ctx, a.kind, a.size)
		if err != nil {
			return asset.FeeBreakdown{}, err
		}
		costs = append(costs, cost)
	}
	return e.breakdown(ctx, costs, IssuanceSignatures)
}

// EstimateTransfer returns the cost of moving one unit.
// If createDestination is true, the rent of the destination holding account is included.
func (e *Estimator) EstimateTransfer(ctx context.Context, createDestination bool) (asset.FeeBreakdown, error) {
	var costs []asset.AccountCost
	if createDestination {
		cost, err := e.accountCost(ctx, asset.HoldingRecord, accounts.HoldingAccountSize)
		if err != nil {
			return asset.FeeBreakdown{}, err
		}
		costs = append(costs, cost)
	}
	return e.breakdown(ctx, costs, TransferSignatures)
}

func (e *Estimator) accountCost(ctx context.Context, kind asset.AccountKind, size uint64) (asset.AccountCost, error) {
	lamports, err := e.ledger.RentExemptionMinimum(ctx, size)
	if err != nil {
		return asset.AccountCost{}, errors.WithMessagef(err, "failed reading rent exemption minimum for [%s:%d]", kind, size)
	}
	return asset.AccountCost{Kind: kind, Size: size, Lamports: lamports}, nil
}

func (e *Estimator) breakdown(ctx context.Context, costs []asset.AccountCost, signatures uint64) (asset.FeeBreakdown, error) {
	perSignature := e.config.LamportsPerSignature
	if perSignature == 0 {
		var err error
		perSignature, err = e.ledger.LamportsPerSignature(ctx)
		if err != nil {
			return asset.FeeBreakdown{}, errors.WithMessage(err, "failed reading lamports per signature")
		}
	}
	fb := asset.FeeBreakdown{
		Accounts:             costs,
		NetworkFee:           perSignature * signatures,
		SurchargeBasisPoints: e.config.SurchargeBasisPoints,
	}
	subtotal := fb.RentSubtotal()
	fb.PlatformSurcharge = subtotal * fb.SurchargeBasisPoints / MaxSurchargeBasisPoints
	fb.Total = subtotal + fb.NetworkFee + fb.PlatformSurcharge
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("estimate: rent [%d], network [%d], surcharge [%d], total [%d]", subtotal, fb.NetworkFee, fb.PlatformSurcharge, fb.Total)
	}
	return fb, nil
}
