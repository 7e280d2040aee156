/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package asset

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized signals that a signed assertion does not prove control of the claimed identity
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation signals a malformed descriptor or address
	ErrValidation = errors.New("validation error")
	// ErrSubmissionFailed signals that the ledger rejected the transaction or it failed on-chain
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrSourceEmpty signals that the source holding account does not hold exactly one unit
	ErrSourceEmpty = errors.New("source empty")
	// ErrReplayed signals that an assertion has already been consumed
	ErrReplayed = errors.Wrap(ErrUnauthorized, "assertion already used")
)

// ErrorKind classifies orchestrator failures
type ErrorKind int

const (
	Unauthorized ErrorKind = iota + 1
	Validation
	SubmissionFailed
	SourceEmpty
)

var kindNames = map[ErrorKind]string{
	Unauthorized:     "Unauthorized",
	Validation:       "ValidationError",
	SubmissionFailed: "SubmissionFailed",
	SourceEmpty:      "SourceEmpty",
}

var kindSentinels = map[ErrorKind]error{
	Unauthorized:     ErrUnauthorized,
	Validation:       ErrValidation,
	SubmissionFailed: ErrSubmissionFailed,
	SourceEmpty:      ErrSourceEmpty,
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// OperationError carries the kind of failure, the offending field (validation only)
// and the ledger diagnostic string unchanged (submission only).
type OperationError struct {
	Op     string
	Kind   ErrorKind
	Field  string
	Reason string
	Err    error
}

// IssuanceError is returned by the issuance orchestrator
type IssuanceError = OperationError

// TransferError is returned by the transfer orchestrator
type TransferError = OperationError

func (e *OperationError) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if len(e.Field) != 0 {
		msg += " [" + e.Field + "]"
	}
	if len(e.Reason) != 0 {
		msg += ": " + e.Reason
	}
	if e.Err != nil && len(e.Reason) == 0 {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OperationError) Unwrap() error { return e.Err }

// Is matches the sentinel associated to the error kind
func (e *OperationError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// NewIssuanceError returns a new IssuanceError
func NewIssuanceError(kind ErrorKind, reason string, err error) *IssuanceError {
	return &OperationError{Op: "issue", Kind: kind, Reason: reason, Err: err}
}

// NewTransferError returns a new TransferError
func NewTransferError(kind ErrorKind, reason string, err error) *TransferError {
	return &OperationError{Op: "transfer", Kind: kind, Reason: reason, Err: err}
}

// KindOf returns the kind of the first OperationError in err's chain, 0 if none
func KindOf(err error) ErrorKind {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return 0
}

// FieldError reports a validation failure for a given field
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string { return fmt.Sprintf("invalid field [%s]: %s", e.Field, e.Msg) }

func (e *FieldError) Is(target error) bool { return target == ErrValidation }
