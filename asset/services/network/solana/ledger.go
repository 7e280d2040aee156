/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package solana

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

var logger = logging.MustGetLogger("network.solana")

const (
	DevnetRPCURL                       = "https://api.devnet.solana.com"
	DefaultLamportsPerSignature uint64 = 5000
	DefaultRequestsPerSecond           = 10
)

type Config struct {
	RPCURL               string  `mapstructure:"rpc_url"`
	Commitment           string  `mapstructure:"commitment"`
	RequestsPerSecond    float64 `mapstructure:"requests_per_second"`
	LamportsPerSignature uint64  `mapstructure:"lamports_per_signature"`
	SkipPreflight        bool    `mapstructure:"skip_preflight"`
}

// Ledger talks to a ledger node over JSON-RPC
type Ledger struct {
	client               *rpc.Client
	limiter              *rate.Limiter
	commitment           rpc.CommitmentType
	lamportsPerSignature uint64
	skipPreflight        bool
}

func NewLedger(config Config) *Ledger {
	if len(config.RPCURL) == 0 {
		config.RPCURL = DevnetRPCURL
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if config.LamportsPerSignature == 0 {
		config.LamportsPerSignature = DefaultLamportsPerSignature
	}
	commitment := rpc.CommitmentType(config.Commitment)
	if len(commitment) == 0 {
		commitment = rpc.CommitmentFinalized
	}
	logger.Infof("connecting to [%s] with commitment [%s]", config.RPCURL, commitment)
	return &Ledger{
		client:               rpc.New(config.RPCURL),
		limiter:              rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1),
		commitment:           commitment,
		lamportsPerSignature: config.LamportsPerSignature,
		skipPreflight:        config.SkipPreflight,
	}
}

func (l *Ledger) wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter")
	}
	return nil
}

func (l *Ledger) Sequence(ctx context.Context, _ asset.Identity) (driver.Sequence, error) {
	if err := l.wait(ctx); err != nil {
		return driver.Sequence{}, err
	}
	res, err := l.client.GetLatestBlockhash(ctx, l.commitment)
	if err != nil {
		return driver.Sequence{}, errors.Wrap(err, "failed getting latest blockhash")
	}
	return driver.Sequence{Token: res.Value.Blockhash.String(), Value: res.Value.LastValidBlockHeight}, nil
}

func (l *Ledger) Submit(ctx context.Context, tx *driver.Transaction, signers []driver.Signer) (string, error) {
	blockhash, err := solana.HashFromBase58(tx.Sequence.Token)
	if err != nil {
		return "", errors.Wrapf(asset.ErrValidation, "invalid blockhash [%s]", tx.Sequence.Token)
	}
	compiled, err := Compile(tx, blockhash)
	if err != nil {
		return "", err
	}
	if err := Sign(compiled, signers); err != nil {
		return "", err
	}
	if err := l.wait(ctx); err != nil {
		return "", err
	}
	sig, err := l.client.SendTransactionWithOpts(ctx, compiled, rpc.TransactionOpts{
		SkipPreflight:       l.skipPreflight,
		PreflightCommitment: l.commitment,
	})
	if err != nil {
		return "", rejection(err)
	}
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("sent transaction [%s] with blockhash [%s]", sig, blockhash)
	}
	return sig.String(), nil
}

// Sign signs the compiled message with every required signer, in account order
func Sign(tx *solana.Transaction, signers []driver.Signer) error {
	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "failed encoding message")
	}
	byKey := make(map[solana.PublicKey]driver.Signer, len(signers))
	for _, s := range signers {
		byKey[accounts.ToPublicKey(s.Identity())] = s
	}
	n := int(tx.Message.Header.NumRequiredSignatures)
	tx.Signatures = make([]solana.Signature, 0, n)
	for _, key := range tx.Message.AccountKeys[:n] {
		s, ok := byKey[key]
		if !ok {
			return errors.Wrapf(asset.ErrUnauthorized, "missing signer [%s]", key)
		}
		raw, err := s.Sign(message)
		if err != nil {
			return errors.WithMessagef(err, "failed signing with [%s]", key)
		}
		tx.Signatures = append(tx.Signatures, solana.SignatureFromBytes(raw))
	}
	return nil
}

// rejection keeps the node diagnostic unchanged
func rejection(err error) error {
	reason := err.Error()
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) && len(rpcErr.Message) != 0 {
		reason = rpcErr.Message
	}
	return errors.WithStack(&driver.RejectionError{Reason: reason})
}

func notFound(err error) bool {
	if errors.Is(err, rpc.ErrNotFound) {
		return true
	}
	var rpcErr *jsonrpc.RPCError
	return errors.As(err, &rpcErr) && strings.Contains(rpcErr.Message, "could not find account")
}

func (l *Ledger) Status(ctx context.Context, id string) (driver.TxStatus, error) {
	sig, err := solana.SignatureFromBase58(id)
	if err != nil {
		return driver.TxStatus{}, errors.Wrapf(asset.ErrValidation, "invalid transaction id [%s]", id)
	}
	if err := l.wait(ctx); err != nil {
		return driver.TxStatus{}, err
	}
	res, err := l.client.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return driver.TxStatus{}, errors.Wrapf(err, "failed getting status of [%s]", id)
	}
	if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
		return driver.TxStatus{State: driver.TxUnknown}, nil
	}
	st := res.Value[0]
	if st.Err != nil {
		raw, _ := json.Marshal(st.Err)
		return driver.TxStatus{State: driver.TxFailed, Reason: string(raw)}, nil
	}
	if st.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
		return driver.TxStatus{State: driver.TxFinalized}, nil
	}
	return driver.TxStatus{State: driver.TxProcessed}, nil
}

func (l *Ledger) Balance(ctx context.Context, account asset.Identity) (uint64, error) {
	if err := l.wait(ctx); err != nil {
		return 0, err
	}
	res, err := l.client.GetTokenAccountBalance(ctx, accounts.ToPublicKey(account), l.commitment)
	if err != nil {
		if notFound(err) {
			return 0, errors.Wrapf(driver.ErrAccountNotFound, "[%s]", account)
		}
		return 0, errors.Wrapf(err, "failed getting balance of [%s]", account)
	}
	if res == nil || res.Value == nil {
		return 0, errors.Wrapf(driver.ErrAccountNotFound, "[%s]", account)
	}
	amount, err := strconv.ParseUint(res.Value.Amount, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid balance [%s] of [%s]", res.Value.Amount, account)
	}
	return amount, nil
}

func (l *Ledger) Lamports(ctx context.Context, account asset.Identity) (uint64, error) {
	if err := l.wait(ctx); err != nil {
		return 0, err
	}
	res, err := l.client.GetBalance(ctx, accounts.ToPublicKey(account), l.commitment)
	if err != nil {
		return 0, errors.Wrapf(err, "failed getting lamports of [%s]", account)
	}
	return res.Value, nil
}

func (l *Ledger) AccountExists(ctx context.Context, account asset.Identity) (bool, error) {
	if err := l.wait(ctx); err != nil {
		return false, err
	}
	_, err := l.client.GetAccountInfoWithOpts(ctx, accounts.ToPublicKey(account), &rpc.GetAccountInfoOpts{Commitment: l.commitment})
	if err != nil {
		if notFound(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed getting account [%s]", account)
	}
	return true, nil
}

func (l *Ledger) RentExemptionMinimum(ctx context.Context, size uint64) (uint64, error) {
	if err := l.wait(ctx); err != nil {
		return 0, err
	}
	lamports, err := l.client.GetMinimumBalanceForRentExemption(ctx, size, l.commitment)
	if err != nil {
		return 0, errors.Wrapf(err, "failed getting rent exemption minimum for [%d] bytes", size)
	}
	return lamports, nil
}

func (l *Ledger) LamportsPerSignature(context.Context) (uint64, error) {
	return l.lamportsPerSignature, nil
}
