/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package asset

import (
	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of lamports in one SOL
const LamportsPerSOL = 1_000_000_000

// State is the state of a submitted transaction as observed by the confirmation watcher
type State int

const (
	// Pending means the outcome is unknown and needs reconciliation
	Pending State = iota
	// Finalized means the transaction is final and its side effect has been observed
	Finalized
	// Failed means the ledger reported a definite failure
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Finalized:
		return "Finalized"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome is the result of watching a submitted transaction
type Outcome struct {
	// ID is the identifier of the submitted transaction
	ID string `json:"id" yaml:"id"`
	// State of the transaction
	State State `json:"state" yaml:"state"`
	// Reason is the ledger diagnostic for Failed outcomes, or why the outcome is still Pending
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Balance is the observed balance of the primary affected holding account
	Balance uint64 `json:"balance" yaml:"balance"`
	// Balances holds every balance re-read during confirmation
	Balances map[Identity]uint64 `json:"balances,omitempty" yaml:"balances,omitempty"`
}

func (o *Outcome) IsFinal() bool { return o.State == Finalized }

// Record is the ledger resident asset created by an issuance
type Record struct {
	Address        Identity   `json:"address" yaml:"address"`
	Metadata       Identity   `json:"metadata" yaml:"metadata"`
	Edition        Identity   `json:"edition" yaml:"edition"`
	Owner          Identity   `json:"owner" yaml:"owner"`
	HoldingAccount Identity   `json:"holding_account" yaml:"holding_account"`
	Supply         uint64     `json:"supply" yaml:"supply"`
	MetadataURI    string     `json:"metadata_uri" yaml:"metadata_uri"`
	Descriptor     Descriptor `json:"descriptor" yaml:"descriptor"`
}

// AccountKind enumerates the account types created by the issuance flow
type AccountKind string

const (
	AssetAccount   AccountKind = "asset"
	MetadataRecord AccountKind = "metadata"
	EditionRecord  AccountKind = "edition"
	HoldingRecord  AccountKind = "holding"
)

// AccountCost is the rent-exemption minimum of an account of a given kind
type AccountCost struct {
	Kind     AccountKind `json:"kind" yaml:"kind"`
	Size     uint64      `json:"size" yaml:"size"`
	Lamports uint64      `json:"lamports" yaml:"lamports"`
}

// FeeBreakdown is the cost of an operation, in lamports
type FeeBreakdown struct {
	Accounts             []AccountCost `json:"accounts" yaml:"accounts"`
	NetworkFee           uint64        `json:"network_fee" yaml:"network_fee"`
	SurchargeBasisPoints uint64        `json:"surcharge_bps" yaml:"surcharge_bps"`
	PlatformSurcharge    uint64        `json:"platform_surcharge" yaml:"platform_surcharge"`
	Total                uint64        `json:"total" yaml:"total"`
}

// RentSubtotal sums the rent of every account
func (f *FeeBreakdown) RentSubtotal() uint64 {
	var sum uint64
	for _, a := range f.Accounts {
		sum += a.Lamports
	}
	return sum
}

// TotalSOL renders the total in SOL
func (f *FeeBreakdown) TotalSOL() decimal.Decimal {
	return ToSOL(f.Total)
}

// ToSOL converts lamports to SOL without rounding
func ToSOL(lamports uint64) decimal.Decimal {
	return decimal.New(int64(lamports), -9)
}
