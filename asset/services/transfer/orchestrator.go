/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transfer

import (
	"context"
	"time"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/asset/services/fees"
	"github.com/nftmint-labs/asset-sdk/asset/services/finality"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/nftmint-labs/asset-sdk/asset/services/signer"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("transfer")

// Service is the transfer contract, implemented by Orchestrator and its decorators
type Service interface {
	Transfer(ctx context.Context, assetAddress, source, destination asset.Identity) (*asset.Outcome, error)
}

// Orchestrator moves the single unit of an asset between two owners.
// The issuer pays, the source owner authorizes through the keyring.
type Orchestrator struct {
	Resolver  *accounts.Resolver
	Estimator *fees.Estimator
	Signer    *signer.Context
	Ledger    driver.Ledger
	Watcher   *finality.Watcher
	Keyring   driver.Keyring
	Timeout   time.Duration

	tracer trace.Tracer
}

func NewOrchestrator(
	resolver *accounts.Resolver,
	estimator *fees.Estimator,
	signerCtx *signer.Context,
	ledger driver.Ledger,
	watcher *finality.Watcher,
	keyring driver.Keyring,
	timeout time.Duration,
	tracerProvider trace.TracerProvider,
) *Orchestrator {
	return &Orchestrator{
		Resolver:  resolver,
		Estimator: estimator,
		Signer:    signerCtx,
		Ledger:    ledger,
		Watcher:   watcher,
		Keyring:   keyring,
		Timeout:   timeout,
		tracer:    tracerProvider.Tracer("transfer"),
	}
}

// Transfer moves the unit of assetAddress from source to destination, creating the destination
// holding account in the same transaction when it is absent.
// A Pending outcome comes with a nil error: the caller must reconcile it later.
func (o *Orchestrator) Transfer(ctx context.Context, assetAddress, source, destination asset.Identity) (*asset.Outcome, error) {
	ctx, span := o.tracer.Start(ctx, "transfer", trace.WithAttributes(
		attribute.String("asset", assetAddress.String()),
		attribute.String("source", source.String()),
		attribute.String("destination", destination.String()),
	))
	defer span.End()

	outcome, err := o.transfer(ctx, assetAddress, source, destination)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Errorf("failed transferring [%s] from [%s] to [%s]: [%s]", assetAddress, source, destination, err)
		return nil, err
	}
	logger.Infof("transferred [%s] from [%s] to [%s]: [%s] [%s]", assetAddress, source, destination, outcome.ID, outcome.State)
	return outcome, nil
}

func (o *Orchestrator) transfer(ctx context.Context, assetAddress, source, destination asset.Identity) (*asset.Outcome, error) {
	if err := validate(assetAddress, source, destination); err != nil {
		return nil, err
	}
	src, err := o.Resolver.HoldingAccount(assetAddress, source)
	if err != nil {
		return nil, err
	}
	dst, err := o.Resolver.HoldingAccount(assetAddress, destination)
	if err != nil {
		return nil, err
	}

	balance, err := o.Ledger.Balance(ctx, src)
	if err != nil && !errors.Is(err, driver.ErrAccountNotFound) {
		return nil, errors.WithMessagef(err, "failed reading balance of [%s]", src)
	}
	if balance != 1 {
		return nil, asset.NewTransferError(asset.SourceEmpty, "", errors.Wrapf(asset.ErrSourceEmpty, "holding account [%s] of [%s] has balance [%d]", src, source, balance))
	}

	authority, err := o.Keyring.Signer(source)
	if err != nil {
		return nil, asset.NewTransferError(asset.Unauthorized, "", errors.Wrapf(asset.ErrUnauthorized, "no custody of [%s]: %s", source, err))
	}

	exists, err := o.Resolver.Exists(ctx, dst)
	if err != nil {
		return nil, err
	}
	issuer := o.Signer.Issuer()
	estimate, err := o.Estimator.EstimateTransfer(ctx, !exists)
	if err != nil {
		return nil, err
	}
	lamports, err := o.Ledger.Lamports(ctx, issuer)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed reading balance of issuer [%s]", issuer)
	}
	if lamports < estimate.Total {
		return nil, asset.NewTransferError(asset.SubmissionFailed,
			"insufficient funds: issuer holds "+asset.ToSOL(lamports).String()+" SOL, transfer costs "+estimate.TotalSOL().String()+" SOL", nil)
	}

	var ixs []driver.Instruction
	if !exists {
		// no-op if the account has been created in the meantime
		ixs = append(ixs, &driver.CreateHoldingAccount{
			Payer:   issuer,
			Owner:   destination,
			Asset:   assetAddress,
			Account: dst,
		})
	}
	ixs = append(ixs, &driver.TransferUnits{
		Asset:       assetAddress,
		Source:      src,
		Destination: dst,
		Authority:   source,
		Amount:      1,
		Decimals:    0,
	})
	if ix := o.Estimator.Surcharge(issuer, estimate); ix != nil {
		ixs = append(ixs, ix)
	}
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("transferring [%s] from [%s] to [%s], destination exists [%v]", assetAddress, src, dst, exists)
	}

	span := trace.SpanFromContext(ctx)
	span.AddEvent("submit")
	id, err := o.Signer.Submit(ctx, ixs, authority)
	if err != nil {
		return nil, submissionError(err)
	}

	span.AddEvent("await")
	outcome := o.Watcher.Await(ctx, id, o.Timeout,
		finality.Probe{Account: dst, Expected: 1},
		finality.Probe{Account: src, Expected: 0},
	)
	if outcome.State == asset.Failed {
		return nil, asset.NewTransferError(asset.SubmissionFailed, outcome.Reason, nil)
	}
	if outcome.State == asset.Pending {
		logger.Warnf("transfer [%s] of [%s] is pending, reconcile the balance of [%s] later", id, assetAddress, dst)
	}
	return &outcome, nil
}

func validate(assetAddress, source, destination asset.Identity) error {
	var fe *asset.FieldError
	switch {
	case assetAddress.IsNone():
		fe = &asset.FieldError{Field: "asset", Msg: "must not be empty"}
	case source.IsNone():
		fe = &asset.FieldError{Field: "source", Msg: "must not be empty"}
	case destination.IsNone():
		fe = &asset.FieldError{Field: "destination", Msg: "must not be empty"}
	case source == destination:
		fe = &asset.FieldError{Field: "destination", Msg: "must differ from source"}
	default:
		return nil
	}
	e := asset.NewTransferError(asset.Validation, fe.Msg, fe)
	e.Field = fe.Field
	return e
}

func submissionError(err error) error {
	var rejection *driver.RejectionError
	if errors.As(err, &rejection) {
		return asset.NewTransferError(asset.SubmissionFailed, rejection.Reason, err)
	}
	if errors.Is(err, asset.ErrUnauthorized) || errors.Is(err, asset.ErrValidation) {
		return err
	}
	return asset.NewTransferError(asset.SubmissionFailed, err.Error(), err)
}
