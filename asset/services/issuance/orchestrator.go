/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issuance

import (
	"context"
	"time"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/asset/services/fees"
	"github.com/nftmint-labs/asset-sdk/asset/services/finality"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/nftmint-labs/asset-sdk/asset/services/replay"
	"github.com/nftmint-labs/asset-sdk/asset/services/signer"
	"github.com/nftmint-labs/asset-sdk/asset/services/sigverify"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("issuance")

// Service is the issuance contract, implemented by Orchestrator and its decorators
type Service interface {
	Issue(ctx context.Context, d asset.Descriptor, owner asset.Identity, assertion *asset.SignedAssertion) (*asset.Record, *asset.Outcome, error)
}

// Orchestrator issues a single unit asset to an owner in one atomic transaction paid by the issuer
type Orchestrator struct {
	Verifier  *sigverify.Verifier
	Guard     *replay.Guard
	Resolver  *accounts.Resolver
	Estimator *fees.Estimator
	Signer    *signer.Context
	Ledger    driver.Ledger
	Watcher   *finality.Watcher
	// Store publishes the descriptor when it carries no URI, it can be nil
	Store   driver.MetadataStore
	Timeout time.Duration

	tracer trace.Tracer
}

func NewOrchestrator(
	verifier *sigverify.Verifier,
	guard *replay.Guard,
	resolver *accounts.Resolver,
	estimator *fees.Estimator,
	signerCtx *signer.Context,
	ledger driver.Ledger,
	watcher *finality.Watcher,
	store driver.MetadataStore,
	timeout time.Duration,
	tracerProvider trace.TracerProvider,
) *Orchestrator {
	return &Orchestrator{
		Verifier:  verifier,
		Guard:     guard,
		Resolver:  resolver,
		Estimator: estimator,
		Signer:    signerCtx,
		Ledger:    ledger,
		Watcher:   watcher,
		Store:     store,
		Timeout:   timeout,
		tracer:    tracerProvider.Tracer("issuance"),
	}
}

// Issue verifies that the caller controls owner, then creates the asset, its metadata and edition
// records and the owner holding account, and mints one unit into it.
// A Pending outcome comes with a record and a nil error: the caller must reconcile it later.
func (o *Orchestrator) Issue(ctx context.Context, d asset.Descriptor, owner asset.Identity, assertion *asset.SignedAssertion) (*asset.Record, *asset.Outcome, error) {
	ctx, span := o.tracer.Start(ctx, "issue", trace.WithAttributes(attribute.String("owner", owner.String())))
	defer span.End()

	record, outcome, err := o.issue(ctx, d, owner, assertion)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Errorf("failed issuing [%s] to [%s]: [%s]", logging.Printable(d.Name), owner, err)
		return nil, nil, err
	}
	logger.Infof("issued [%s] to [%s]: [%s] [%s]", record.Address, owner, outcome.ID, outcome.State)
	return record, outcome, nil
}

func (o *Orchestrator) issue(ctx context.Context, d asset.Descriptor, owner asset.Identity, assertion *asset.SignedAssertion) (*asset.Record, *asset.Outcome, error) {
	if owner.IsNone() {
		return nil, nil, validationError(&asset.FieldError{Field: "owner", Msg: "must not be empty"})
	}
	publish := len(d.URI) == 0 && o.Store != nil
	if err := validate(&d, publish); err != nil {
		return nil, nil, err
	}

	if !o.Verifier.VerifyAssertion(assertion, owner) {
		return nil, nil, asset.NewIssuanceError(asset.Unauthorized, "", errors.Wrapf(asset.ErrUnauthorized, "assertion does not prove control of [%s]", owner))
	}
	if o.Guard != nil {
		if err := o.Guard.Check(assertion); err != nil {
			return nil, nil, asset.NewIssuanceError(asset.Unauthorized, "", err)
		}
	}

	var err error
	if publish {
		err = o.publish(ctx, &d)
	}
	var record *asset.Record
	var outcome *asset.Outcome
	if err == nil {
		record, outcome, err = o.submit(ctx, d, owner)
	}
	if err != nil && o.Guard != nil {
		// no asset has been created, the caller may retry with the same assertion
		o.Guard.Forget(assertion)
	}
	return record, outcome, err
}

// validate checks the descriptor, its URI is checked only when the caller provided it
func validate(d *asset.Descriptor, publish bool) error {
	check := d.Validate
	if publish {
		check = d.ValidateContent
	}
	if err := check(); err != nil {
		return validationError(err)
	}
	return nil
}

func (o *Orchestrator) publish(ctx context.Context, d *asset.Descriptor) error {
	uri, err := o.Store.Publish(ctx, *d)
	if err != nil {
		return errors.WithMessage(err, "failed publishing metadata")
	}
	d.URI = uri
	return validate(d, false)
}

func (o *Orchestrator) submit(ctx context.Context, d asset.Descriptor, owner asset.Identity) (*asset.Record, *asset.Outcome, error) {
	span := trace.SpanFromContext(ctx)
	issuer := o.Signer.Issuer()

	// the asset address is a fresh key, never derived
	assetKey, err := signer.NewKeyPair()
	if err != nil {
		return nil, nil, err
	}
	record, err := o.resolve(assetKey.Identity(), owner)
	if err != nil {
		return nil, nil, err
	}
	record.MetadataURI = d.URI
	record.Descriptor = d
	span.SetAttributes(attribute.String("asset", record.Address.String()))

	holdingExists, err := o.Resolver.Exists(ctx, record.HoldingAccount)
	if err != nil {
		return nil, nil, err
	}

	span.AddEvent("estimate")
	estimate, err := o.Estimator.EstimateIssuance(ctx)
	if err != nil {
		return nil, nil, err
	}
	balance, err := o.Ledger.Lamports(ctx, issuer)
	if err != nil {
		return nil, nil, errors.WithMessagef(err, "failed reading balance of issuer [%s]", issuer)
	}
	if balance < estimate.Total {
		return nil, nil, asset.NewIssuanceError(asset.SubmissionFailed,
			"insufficient funds: issuer holds "+asset.ToSOL(balance).String()+" SOL, issuance costs "+estimate.TotalSOL().String()+" SOL", nil)
	}

	ixs := o.instructions(record, issuer, estimate, holdingExists)
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("issuing [%s] with [%d] instructions, holding account exists [%v]", record.Address, len(ixs), holdingExists)
	}

	span.AddEvent("submit")
	id, err := o.Signer.Submit(ctx, ixs, assetKey)
	if err != nil {
		return nil, nil, submissionError(err)
	}

	span.AddEvent("await")
	outcome := o.Watcher.Await(ctx, id, o.Timeout, finality.Probe{Account: record.HoldingAccount, Expected: 1})
	switch outcome.State {
	case asset.Failed:
		return nil, nil, asset.NewIssuanceError(asset.SubmissionFailed, outcome.Reason, nil)
	case asset.Pending:
		logger.Warnf("issuance [%s] of [%s] is pending, reconcile the balance of [%s] later", id, record.Address, record.HoldingAccount)
	}
	return record, &outcome, nil
}

func (o *Orchestrator) resolve(assetAddress, owner asset.Identity) (*asset.Record, error) {
	holding, err := o.Resolver.HoldingAccount(assetAddress, owner)
	if err != nil {
		return nil, err
	}
	metadata, err := o.Resolver.MetadataAccount(assetAddress)
	if err != nil {
		return nil, err
	}
	edition, err := o.Resolver.EditionAccount(assetAddress)
	if err != nil {
		return nil, err
	}
	return &asset.Record{
		Address:        assetAddress,
		Metadata:       metadata,
		Edition:        edition,
		Owner:          owner,
		HoldingAccount: holding,
		Supply:         1,
	}, nil
}

func (o *Orchestrator) instructions(r *asset.Record, issuer asset.Identity, estimate asset.FeeBreakdown, holdingExists bool) []driver.Instruction {
	assetRent := uint64(0)
	for _, a := range estimate.Accounts {
		if a.Kind == asset.AssetAccount {
			assetRent = a.Lamports
		}
	}
	ixs := []driver.Instruction{
		&driver.CreateAssetAccount{
			Payer:    issuer,
			Asset:    r.Address,
			Lamports: assetRent,
			Space:    accounts.AssetAccountSize,
		},
		&driver.InitializeAsset{
			Asset:           r.Address,
			Decimals:        0,
			MintAuthority:   issuer,
			FreezeAuthority: issuer,
		},
		&driver.CreateMetadata{
			Metadata:        r.Metadata,
			Asset:           r.Address,
			MintAuthority:   issuer,
			Payer:           issuer,
			UpdateAuthority: issuer,
			Creator:         r.Owner,
			Title:           r.Descriptor.Name,
			Symbol:          r.Descriptor.Symbol,
			URI:             r.MetadataURI,
			IsMutable:       true,
		},
	}
	if !holdingExists {
		ixs = append(ixs, &driver.CreateHoldingAccount{
			Payer:   issuer,
			Owner:   r.Owner,
			Asset:   r.Address,
			Account: r.HoldingAccount,
		})
	}
	ixs = append(ixs,
		&driver.MintUnits{
			Asset:       r.Address,
			Destination: r.HoldingAccount,
			Authority:   issuer,
			Amount:      1,
		},
		&driver.FinalizeSupply{
			Edition:         r.Edition,
			Asset:           r.Address,
			Metadata:        r.Metadata,
			UpdateAuthority: issuer,
			MintAuthority:   issuer,
			Payer:           issuer,
			MaxSupply:       0,
		},
	)
	if ix := o.Estimator.Surcharge(issuer, estimate); ix != nil {
		ixs = append(ixs, ix)
	}
	return ixs
}

func validationError(err error) error {
	e := asset.NewIssuanceError(asset.Validation, "", err)
	var fe *asset.FieldError
	if errors.As(err, &fe) {
		e.Field = fe.Field
		e.Reason = fe.Msg
	}
	return e
}

func submissionError(err error) error {
	var rejection *driver.RejectionError
	if errors.As(err, &rejection) {
		return asset.NewIssuanceError(asset.SubmissionFailed, rejection.Reason, err)
	}
	if errors.Is(err, asset.ErrUnauthorized) || errors.Is(err, asset.ErrValidation) {
		return err
	}
	return asset.NewIssuanceError(asset.SubmissionFailed, err.Error(), err)
}
