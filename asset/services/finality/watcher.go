/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package finality

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("finality")

const (
	DefaultTimeout         = 60 * time.Second
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 5 * time.Second
	DefaultMultiplier      = 1.5
)

// Probe is a balance the watcher re-reads once the ledger reports the transaction as final.
// The outcome is finalized only if every probe shows its expected balance.
type Probe struct {
	Account  asset.Identity
	Expected uint64
}

type Config struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
}

func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
		Multiplier:      DefaultMultiplier,
	}
}

// Watcher polls the ledger until a transaction is final, failed, or the deadline expires.
// Abandoning a watch never cancels the transaction on the ledger.
type Watcher struct {
	ledger driver.Ledger
	config Config
	tracer trace.Tracer
}

func NewWatcher(ledger driver.Ledger, config Config, tracerProvider trace.TracerProvider) *Watcher {
	d := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = d.Timeout
	}
	if config.InitialInterval <= 0 {
		config.InitialInterval = d.InitialInterval
	}
	if config.MaxInterval < config.InitialInterval {
		config.MaxInterval = max(d.MaxInterval, config.InitialInterval)
	}
	if config.Multiplier < 1 {
		config.Multiplier = d.Multiplier
	}
	return &Watcher{
		ledger: ledger,
		config: config,
		tracer: tracerProvider.Tracer("finality_watcher"),
	}
}

func (w *Watcher) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.config.InitialInterval
	b.MaxInterval = w.config.MaxInterval
	b.Multiplier = w.config.Multiplier
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Await waits for the transaction with the given id to reach a final state.
// A non-positive timeout selects the configured one. The returned outcome is
// Finalized once the ledger reports the transaction final and every probe matches,
// Failed if the ledger reports a definite failure, Pending otherwise.
func (w *Watcher) Await(ctx context.Context, id string, timeout time.Duration, probes ...Probe) asset.Outcome {
	if timeout <= 0 {
		timeout = w.config.Timeout
	}
	ctx, span := w.tracer.Start(ctx, "await", trace.WithAttributes(attribute.String("tx_id", id)))
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	b := w.newBackOff()
	for attempt := 1; ; attempt++ {
		status, err := w.ledger.Status(ctx, id)
		switch {
		case err != nil:
			logger.Warnf("failed reading status of [%s], attempt [%d]: [%s]", id, attempt, err)
		case status.State == driver.TxFailed:
			span.AddEvent("failed")
			logger.Errorf("transaction [%s] failed: [%s]", id, status.Reason)
			return asset.Outcome{ID: id, State: asset.Failed, Reason: status.Reason}
		case status.State == driver.TxFinalized:
			span.AddEvent("finalized")
			balances, matched, err := w.corroborate(ctx, probes)
			if err != nil {
				logger.Warnf("failed corroborating [%s]: [%s]", id, err)
			} else if matched {
				out := asset.Outcome{ID: id, State: asset.Finalized, Balances: balances}
				if len(probes) > 0 {
					out.Balance = balances[probes[0].Account]
				}
				logger.Infof("transaction [%s] finalized", id)
				return out
			}
		default:
			if logger.IsEnabledFor(zapcore.DebugLevel) {
				logger.Debugf("transaction [%s] is [%s], attempt [%d]", id, status.State, attempt)
			}
		}

		timer := time.NewTimer(b.NextBackOff())
		select {
		case <-ctx.Done():
			timer.Stop()
			span.AddEvent("deadline")
			logger.Warnf("transaction [%s] still pending after [%d] attempts: [%s]", id, attempt, ctx.Err())
			return asset.Outcome{ID: id, State: asset.Pending, Reason: ctx.Err().Error()}
		case <-timer.C:
		}
	}
}

func (w *Watcher) corroborate(ctx context.Context, probes []Probe) (map[asset.Identity]uint64, bool, error) {
	balances := make(map[asset.Identity]uint64, len(probes))
	matched := true
	for _, p := range probes {
		balance, err := w.ledger.Balance(ctx, p.Account)
		if err != nil && !errors.Is(err, driver.ErrAccountNotFound) {
			return nil, false, errors.WithMessagef(err, "failed reading balance of [%s]", p.Account)
		}
		balances[p.Account] = balance
		if balance != p.Expected {
			if logger.IsEnabledFor(zapcore.DebugLevel) {
				logger.Debugf("balance of [%s] is [%d], expected [%d]", p.Account, balance, p.Expected)
			}
			matched = false
		}
	}
	return balances, matched, nil
}
