/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

import (
	"context"
	"fmt"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/pkg/errors"
)

// ErrAccountNotFound is returned by balance queries on accounts that do not exist
var ErrAccountNotFound = errors.New("account not found")

// Sequence is the anti-replay token the ledger expects for the next submission of a signer.
// For account-nonce ledgers Value is the next nonce; for blockhash ledgers Token is the
// recent blockhash and Value its last valid block height.
type Sequence struct {
	Value uint64
	Token string
}

func (s Sequence) String() string {
	if len(s.Token) == 0 {
		return fmt.Sprintf("%d", s.Value)
	}
	return fmt.Sprintf("%s@%d", s.Token, s.Value)
}

// TxState is the ledger view of a submitted transaction
type TxState int

const (
	// TxUnknown means the ledger does not know the transaction (yet)
	TxUnknown TxState = iota
	// TxProcessed means the transaction has been included but can still be reverted
	TxProcessed
	// TxFinalized means the transaction cannot be reverted
	TxFinalized
	// TxFailed means the transaction has been included and failed
	TxFailed
)

func (s TxState) String() string {
	switch s {
	case TxUnknown:
		return "Unknown"
	case TxProcessed:
		return "Processed"
	case TxFinalized:
		return "Finalized"
	case TxFailed:
		return "Failed"
	}
	return fmt.Sprintf("TxState(%d)", int(s))
}

// TxStatus is returned by Ledger.Status
type TxStatus struct {
	State  TxState
	Reason string
}

// RejectionError is returned by Ledger.Submit when the ledger refuses a transaction.
// Reason is the ledger's own diagnostic string.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string { return "transaction rejected: " + e.Reason }

// Transaction is an ordered list of instructions that commit atomically.
// The payer pays every fee and every rent deposit.
type Transaction struct {
	Payer        asset.Identity
	Sequence     Sequence
	Instructions []Instruction
}

// RequiredSigners returns the payer followed by every distinct instruction signer
func (t *Transaction) RequiredSigners() []asset.Identity {
	seen := map[asset.Identity]bool{t.Payer: true}
	out := []asset.Identity{t.Payer}
	for _, ix := range t.Instructions {
		for _, s := range ix.Signers() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Signer produces ed25519 signatures on behalf of an identity
type Signer interface {
	Identity() asset.Identity
	Sign(message []byte) ([]byte, error)
}

// Ledger models the remote ledger. Reads are retryable, submissions are at-least-once.
//
//go:generate counterfeiter -o mock/ledger.go -fake-name Ledger . Ledger
type Ledger interface {
	// Sequence returns the anti-replay token to use for the next submission paid by payer
	Sequence(ctx context.Context, payer asset.Identity) (Sequence, error)
	// Submit signs the transaction with the passed signers and submits it.
	// It returns a *RejectionError if the ledger refuses it.
	Submit(ctx context.Context, tx *Transaction, signers []Signer) (string, error)
	// Status returns the current status of a submitted transaction
	Status(ctx context.Context, id string) (TxStatus, error)
	// Balance returns the unit balance of a holding account
	Balance(ctx context.Context, account asset.Identity) (uint64, error)
	// Lamports returns the native balance of an account
	Lamports(ctx context.Context, account asset.Identity) (uint64, error)
	// AccountExists tells whether an account exists at the given address
	AccountExists(ctx context.Context, account asset.Identity) (bool, error)
	// RentExemptionMinimum returns the minimum balance for an account of the given size to be rent exempt
	RentExemptionMinimum(ctx context.Context, size uint64) (uint64, error)
	// LamportsPerSignature returns the flat network fee per transaction signature
	LamportsPerSignature(ctx context.Context) (uint64, error)
}
