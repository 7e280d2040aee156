/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memory

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/nftmint-labs/asset-sdk/asset/services/sigverify"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("network.memory")

const (
	DefaultLamportsPerSignature uint64 = 5000

	rentLamportsPerByteYear uint64 = 3480
	rentExemptionYears      uint64 = 2
	accountStorageOverhead  uint64 = 128
)

// RentExemptionMinimum is the rent formula of the ledger
func RentExemptionMinimum(size uint64) uint64 {
	return (accountStorageOverhead + size) * rentLamportsPerByteYear * rentExemptionYears
}

type txEntry struct {
	status  driver.TxStatus
	pending int
}

// Ledger is an in-process ledger. Transactions are atomic: if any instruction fails the fee
// is charged, the payer sequence advances, and every other effect is discarded.
type Ledger struct {
	mu sync.Mutex

	accounts             state
	sequences            map[asset.Identity]uint64
	txs                  map[string]*txEntry
	lamportsPerSignature uint64
	confirmations        int
	rejectNext           string
	failNext             string
}

func NewLedger() *Ledger {
	return &Ledger{
		accounts:             state{},
		sequences:            map[asset.Identity]uint64{},
		txs:                  map[string]*txEntry{},
		lamportsPerSignature: DefaultLamportsPerSignature,
	}
}

// Fund credits lamports to an account, creating it if needed
func (l *Ledger) Fund(id asset.Identity, lamports uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		a = &account{}
		l.accounts[id] = a
	}
	a.lamports += lamports
}

// SetConfirmations sets how many status reads report a landed transaction as processed before it is final
func (l *Ledger) SetConfirmations(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.confirmations = n
}

// RejectNext makes the next submission be refused with the given reason
func (l *Ledger) RejectNext(reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rejectNext = reason
}

// FailNext makes the next submission land and fail with the given reason
func (l *Ledger) FailNext(reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failNext = reason
}

// CreateHoldingAccount creates the holding account of owner out of band, as a concurrent party would
func (l *Ledger) CreateHoldingAccount(assetAddress, owner asset.Identity) (asset.Identity, error) {
	addr, err := accounts.HoldingAccount(assetAddress, owner)
	if err != nil {
		return asset.Identity{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[addr]; !ok {
		l.accounts[addr] = &account{
			lamports: RentExemptionMinimum(accounts.HoldingAccountSize),
			size:     accounts.HoldingAccountSize,
			holding:  &holdingState{owner: owner, asset: assetAddress},
		}
	}
	return addr, nil
}

func (l *Ledger) Sequence(_ context.Context, payer asset.Identity) (driver.Sequence, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return driver.Sequence{Value: l.sequences[payer]}, nil
}

func (l *Ledger) Submit(_ context.Context, tx *driver.Transaction, signers []driver.Signer) (string, error) {
	message, err := Message(tx)
	if err != nil {
		return "", err
	}
	signatures, err := sign(message, signers)
	if err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.rejectNext) != 0 {
		reason := l.rejectNext
		l.rejectNext = ""
		return "", &driver.RejectionError{Reason: reason}
	}
	required := tx.RequiredSigners()
	for _, id := range required {
		sig, ok := signatures[id]
		if !ok || !sigverify.Verify(message, sig, id) {
			return "", &driver.RejectionError{Reason: "missing signature for " + id.String()}
		}
	}
	if expected := l.sequences[tx.Payer]; tx.Sequence.Value != expected {
		return "", &driver.RejectionError{Reason: "stale sequence"}
	}
	fee := l.lamportsPerSignature * uint64(len(required))
	payer, ok := l.accounts[tx.Payer]
	if !ok || payer.lamports < fee {
		return "", &driver.RejectionError{Reason: "insufficient funds for fee"}
	}

	id := base58.Encode(signatures[tx.Payer])
	payer.lamports -= fee
	l.sequences[tx.Payer]++

	entry := &txEntry{pending: l.confirmations}
	next := l.accounts.clone()
	err = l.apply(next, tx)
	switch {
	case len(l.failNext) != 0:
		entry.status = driver.TxStatus{State: driver.TxFailed, Reason: l.failNext}
		l.failNext = ""
	case err != nil:
		entry.status = driver.TxStatus{State: driver.TxFailed, Reason: err.Error()}
	default:
		entry.status = driver.TxStatus{State: driver.TxFinalized}
		l.accounts = next
	}
	l.txs[id] = entry
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("transaction [%s] landed: [%s] [%s]", id, entry.status.State, entry.status.Reason)
	}
	return id, nil
}

func (l *Ledger) Status(_ context.Context, id string) (driver.TxStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.txs[id]
	if !ok {
		return driver.TxStatus{State: driver.TxUnknown}, nil
	}
	if entry.pending > 0 {
		entry.pending--
		return driver.TxStatus{State: driver.TxProcessed}, nil
	}
	return entry.status, nil
}

func (l *Ledger) Balance(_ context.Context, id asset.Identity) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok || a.holding == nil {
		return 0, errors.Wrapf(driver.ErrAccountNotFound, "[%s]", id)
	}
	return a.holding.balance, nil
}

func (l *Ledger) Lamports(_ context.Context, id asset.Identity) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.accounts[id]; ok {
		return a.lamports, nil
	}
	return 0, nil
}

func (l *Ledger) AccountExists(_ context.Context, id asset.Identity) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.accounts[id]
	return ok, nil
}

func (l *Ledger) RentExemptionMinimum(_ context.Context, size uint64) (uint64, error) {
	return RentExemptionMinimum(size), nil
}

func (l *Ledger) LamportsPerSignature(context.Context) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lamportsPerSignature, nil
}

// Metadata returns the metadata record bound to the given asset
func (l *Ledger) Metadata(assetAddress asset.Identity) (MetadataInfo, bool) {
	addr, err := accounts.MetadataAccount(assetAddress)
	if err != nil {
		return MetadataInfo{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[addr]
	if !ok || a.metadata == nil {
		return MetadataInfo{}, false
	}
	return *a.metadata, true
}

// Supply returns the number of units minted for the given asset
func (l *Ledger) Supply(assetAddress asset.Identity) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.accounts[assetAddress]; ok && a.asset != nil {
		return a.asset.supply
	}
	return 0
}

// HoldingOwner returns the owner recorded in a holding account
func (l *Ledger) HoldingOwner(id asset.Identity) (asset.Identity, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.accounts[id]; ok && a.holding != nil {
		return a.holding.owner, true
	}
	return asset.Identity{}, false
}

// Message returns the canonical bytes signers sign for the given transaction
func Message(tx *driver.Transaction) ([]byte, error) {
	type named struct {
		Name string             `json:"name"`
		Data driver.Instruction `json:"data"`
	}
	ixs := make([]named, len(tx.Instructions))
	for i, ix := range tx.Instructions {
		ixs[i] = named{Name: ix.Name(), Data: ix}
	}
	raw, err := json.Marshal(struct {
		Payer        asset.Identity  `json:"payer"`
		Sequence     driver.Sequence `json:"sequence"`
		Instructions []named         `json:"instructions"`
	}{tx.Payer, tx.Sequence, ixs})
	if err != nil {
		return nil, errors.Wrap(err, "failed encoding transaction")
	}
	h := sha256.Sum256(raw)
	return h[:], nil
}

func sign(message []byte, signers []driver.Signer) (map[asset.Identity][]byte, error) {
	signatures := make(map[asset.Identity][]byte, len(signers))
	for _, s := range signers {
		sig, err := s.Sign(message)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed signing with [%s]", s.Identity())
		}
		signatures[s.Identity()] = sig
	}
	return signatures, nil
}
