/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type issuer struct {
	outcome *asset.Outcome
	err     error
}

func (i *issuer) Issue(context.Context, asset.Descriptor, asset.Identity, *asset.SignedAssertion) (*asset.Record, *asset.Outcome, error) {
	if i.err != nil {
		return nil, nil, i.err
	}
	return &asset.Record{}, i.outcome, nil
}

type transferrer struct {
	outcome *asset.Outcome
	err     error
}

func (t *transferrer) Transfer(context.Context, asset.Identity, asset.Identity, asset.Identity) (*asset.Outcome, error) {
	return t.outcome, t.err
}

func TestResult(t *testing.T) {
	assert.Equal(t, "finalized", metrics.Result(&asset.Outcome{State: asset.Finalized}, nil))
	assert.Equal(t, "pending", metrics.Result(&asset.Outcome{State: asset.Pending}, nil))
	assert.Equal(t, "unauthorized", metrics.Result(nil, asset.NewIssuanceError(asset.Unauthorized, "", nil)))
	assert.Equal(t, "sourceempty", metrics.Result(nil, asset.NewTransferError(asset.SourceEmpty, "", nil)))
	assert.Equal(t, "error", metrics.Result(nil, errors.New("boom")))
}

func TestObservableServices(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry, "devnet")
	require.NoError(t, err)

	// registering twice reuses the collectors
	again, err := metrics.New(registry, "devnet")
	require.NoError(t, err)
	assert.Same(t, m.Issues, again.Issues)

	ok := metrics.NewObservableIssuanceService(&issuer{outcome: &asset.Outcome{State: asset.Finalized}}, m)
	_, _, err = ok.Issue(context.Background(), asset.Descriptor{}, asset.Identity{}, nil)
	require.NoError(t, err)
	failing := metrics.NewObservableIssuanceService(&issuer{err: asset.NewIssuanceError(asset.SubmissionFailed, "x", nil)}, m)
	_, _, err = failing.Issue(context.Background(), asset.Descriptor{}, asset.Identity{}, nil)
	require.Error(t, err)

	tr := metrics.NewObservableTransferService(&transferrer{outcome: &asset.Outcome{State: asset.Pending}}, m)
	_, err = tr.Transfer(context.Background(), asset.Identity{}, asset.Identity{}, asset.Identity{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Issues.WithLabelValues("devnet", "finalized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Issues.WithLabelValues("devnet", "submissionfailed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transfers.WithLabelValues("devnet", "pending")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TransferDuration))

	families, err := registry.Gather()
	require.NoError(t, err)
	var samples uint64
	for _, f := range families {
		if f.GetName() == "asset_sdk_issue_duration_seconds" {
			samples = f.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(2), samples)
}
