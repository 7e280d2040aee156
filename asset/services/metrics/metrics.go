/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"strings"
	"time"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = logging.MustGetLogger("metrics")

const (
	namespace = "asset_sdk"

	NetworkLabel = "network"
	ResultLabel  = "result"
)

var (
	issuesOpts = prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issue_operations",
		Help:      "The number of issue operations by result",
	}
	issueDurationOpts = prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "issue_duration_seconds",
		Help:      "Duration of an issue operation",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}
	transfersOpts = prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfer_operations",
		Help:      "The number of transfer operations by result",
	}
	transferDurationOpts = prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transfer_duration_seconds",
		Help:      "Duration of a transfer operation",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}
)

// Metrics collects the operation counters and durations of one network
type Metrics struct {
	network string

	Issues           *prometheus.CounterVec
	IssueDuration    *prometheus.HistogramVec
	Transfers        *prometheus.CounterVec
	TransferDuration *prometheus.HistogramVec
}

// New registers the collectors on registerer. Collectors already registered are reused.
func New(registerer prometheus.Registerer, network string) (*Metrics, error) {
	m := &Metrics{network: network}
	var err error
	labels := []string{NetworkLabel, ResultLabel}
	if m.Issues, err = register(registerer, prometheus.NewCounterVec(issuesOpts, labels)); err != nil {
		return nil, err
	}
	if m.IssueDuration, err = register(registerer, prometheus.NewHistogramVec(issueDurationOpts, []string{NetworkLabel})); err != nil {
		return nil, err
	}
	if m.Transfers, err = register(registerer, prometheus.NewCounterVec(transfersOpts, labels)); err != nil {
		return nil, err
	}
	if m.TransferDuration, err = register(registerer, prometheus.NewHistogramVec(transferDurationOpts, []string{NetworkLabel})); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](registerer prometheus.Registerer, c C) (C, error) {
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				logger.Warnf("reusing registered collector: [%s]", err)
				return existing, nil
			}
		}
		return c, errors.Wrap(err, "failed registering collector")
	}
	return c, nil
}

func (m *Metrics) AddIssue(outcome *asset.Outcome, err error) {
	m.Issues.WithLabelValues(m.network, Result(outcome, err)).Inc()
}

func (m *Metrics) ObserveIssueDuration(duration time.Duration) {
	m.IssueDuration.WithLabelValues(m.network).Observe(duration.Seconds())
}

func (m *Metrics) AddTransfer(outcome *asset.Outcome, err error) {
	m.Transfers.WithLabelValues(m.network, Result(outcome, err)).Inc()
}

func (m *Metrics) ObserveTransferDuration(duration time.Duration) {
	m.TransferDuration.WithLabelValues(m.network).Observe(duration.Seconds())
}

// Result returns the label value of an operation result
func Result(outcome *asset.Outcome, err error) string {
	if err != nil {
		if kind := asset.KindOf(err); kind != 0 {
			return strings.ToLower(kind.String())
		}
		return "error"
	}
	if outcome == nil {
		return "unknown"
	}
	return strings.ToLower(outcome.State.String())
}
