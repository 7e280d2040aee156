/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"context"

	"github.com/hashicorp/go-uuid"
	"github.com/mr-tron/base58"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/issuance"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

var logger = logging.MustGetLogger("batch")

// DefaultWorkers is the number of issuances run concurrently when none is configured
const DefaultWorkers = 4

// Assertion is the text form of a signed assertion. The signature is base58 encoded.
type Assertion struct {
	Identity  asset.Identity `json:"identity" yaml:"identity"`
	Message   string         `json:"message" yaml:"message"`
	Signature string         `json:"signature" yaml:"signature"`
}

func (a *Assertion) Decode() (*asset.SignedAssertion, error) {
	sig, err := base58.Decode(a.Signature)
	if err != nil {
		return nil, errors.Wrapf(asset.ErrValidation, "invalid signature encoding: %s", err)
	}
	return &asset.SignedAssertion{Identity: a.Identity, Message: []byte(a.Message), Signature: sig}, nil
}

// Request is a single issuance of a batch
type Request struct {
	ID         string           `json:"id,omitempty" yaml:"id,omitempty"`
	Descriptor asset.Descriptor `json:"descriptor" yaml:"descriptor"`
	Owner      asset.Identity   `json:"owner" yaml:"owner"`
	Assertion  Assertion        `json:"assertion" yaml:"assertion"`
}

// Result reports the issuance of a request. Error is empty on success.
type Result struct {
	ID      string         `json:"id" yaml:"id"`
	Record  *asset.Record  `json:"record,omitempty" yaml:"record,omitempty"`
	Outcome *asset.Outcome `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
	Err     error          `json:"-" yaml:"-"`
}

// Issuer runs many issuances through the same issuance service with bounded concurrency.
// The issuer signing context serializes the submissions, confirmations are awaited in parallel.
type Issuer struct {
	Service issuance.Service
	Workers int
}

func NewIssuer(service issuance.Service, workers int) *Issuer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Issuer{Service: service, Workers: workers}
}

// Issue processes every request and returns the results in request order.
// Requests without an ID get a random one.
func (b *Issuer) Issue(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))
	for i := range requests {
		id := requests[i].ID
		if len(id) == 0 {
			var err error
			id, err = uuid.GenerateUUID()
			if err != nil {
				return nil, errors.Wrap(err, "failed generating request id")
			}
		}
		results[i].ID = id
	}

	p := pool.New().WithMaxGoroutines(b.Workers)
	for i := range requests {
		p.Go(func() {
			results[i] = b.issue(ctx, results[i].ID, &requests[i])
		})
	}
	p.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Infof("batch done: [%d] requests, [%d] failed", len(requests), failed)
	return results, nil
}

func (b *Issuer) issue(ctx context.Context, id string, req *Request) Result {
	res := Result{ID: id}
	assertion, err := req.Assertion.Decode()
	if err != nil {
		res.Err = asset.NewIssuanceError(asset.Validation, "", err)
	} else {
		res.Record, res.Outcome, res.Err = b.Service.Issue(ctx, req.Descriptor, req.Owner, assertion)
	}
	if res.Err != nil {
		logger.Errorf("request [%s] failed: [%s]", id, res.Err)
		res.Error = res.Err.Error()
	}
	return res
}
