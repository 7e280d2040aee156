/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"time"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/issuance"
	"github.com/nftmint-labs/asset-sdk/asset/services/transfer"
)

type ObservableIssuanceService struct {
	IssuanceService issuance.Service
	Metrics         *Metrics
}

func NewObservableIssuanceService(issuanceService issuance.Service, metrics *Metrics) *ObservableIssuanceService {
	return &ObservableIssuanceService{IssuanceService: issuanceService, Metrics: metrics}
}

func (o *ObservableIssuanceService) Issue(ctx context.Context, d asset.Descriptor, owner asset.Identity, assertion *asset.SignedAssertion) (*asset.Record, *asset.Outcome, error) {
	start := time.Now()
	record, outcome, err := o.IssuanceService.Issue(ctx, d, owner, assertion)
	duration := time.Since(start)
	o.Metrics.ObserveIssueDuration(duration)
	o.Metrics.AddIssue(outcome, err)
	return record, outcome, err
}

type ObservableTransferService struct {
	TransferService transfer.Service
	Metrics         *Metrics
}

func NewObservableTransferService(transferService transfer.Service, metrics *Metrics) *ObservableTransferService {
	return &ObservableTransferService{TransferService: transferService, Metrics: metrics}
}

func (o *ObservableTransferService) Transfer(ctx context.Context, assetAddress, source, destination asset.Identity) (*asset.Outcome, error) {
	start := time.Now()
	outcome, err := o.TransferService.Transfer(ctx, assetAddress, source, destination)
	duration := time.Since(start)
	o.Metrics.ObserveTransferDuration(duration)
	o.Metrics.AddTransfer(outcome, err)
	return outcome, err
}
