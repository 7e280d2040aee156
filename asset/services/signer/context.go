/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"context"
	"sync"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("signer")

// Context owns the issuer signing identity.
// Fetching the sequence, signing and submitting happen under a single lock,
// so that concurrent operations never race on the issuer sequence.
type Context struct {
	issuer driver.Signer
	ledger driver.Ledger

	mu sync.Mutex
}

func NewContext(issuer driver.Signer, ledger driver.Ledger) *Context {
	return &Context{issuer: issuer, ledger: ledger}
}

// Issuer returns the identity paying for every submission
func (c *Context) Issuer() asset.Identity {
	return c.issuer.Identity()
}

// Submit builds a transaction paid by the issuer out of the passed instructions and submits it.
// Cosigners are the additional signers the instructions require.
func (c *Context) Submit(ctx context.Context, instructions []driver.Instruction, cosigners ...driver.Signer) (string, error) {
	if len(instructions) == 0 {
		return "", errors.Wrap(asset.ErrValidation, "empty transaction")
	}
	signers := append([]driver.Signer{c.issuer}, cosigners...)
	tx := &driver.Transaction{
		Payer:        c.issuer.Identity(),
		Instructions: instructions,
	}
	if err := checkSigners(tx, signers); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seq, err := c.ledger.Sequence(ctx, tx.Payer)
	if err != nil {
		return "", errors.WithMessagef(err, "failed fetching sequence for [%s]", tx.Payer)
	}
	tx.Sequence = seq
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("submitting [%d] instructions with sequence [%s]", len(instructions), seq)
	}
	id, err := c.ledger.Submit(ctx, tx, signers)
	if err != nil {
		return "", err
	}
	logger.Infof("submitted transaction [%s]", id)
	return id, nil
}

func checkSigners(tx *driver.Transaction, signers []driver.Signer) error {
	available := make(map[asset.Identity]bool, len(signers))
	for _, s := range signers {
		available[s.Identity()] = true
	}
	for _, required := range tx.RequiredSigners() {
		if !available[required] {
			return errors.Wrapf(asset.ErrUnauthorized, "missing signer [%s]", required)
		}
	}
	return nil
}
