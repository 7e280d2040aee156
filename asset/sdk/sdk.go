/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sdk

import (
	"context"
	errors2 "errors"
	"sync"

	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/asset/services/batch"
	"github.com/nftmint-labs/asset-sdk/asset/services/config"
	"github.com/nftmint-labs/asset-sdk/asset/services/fees"
	"github.com/nftmint-labs/asset-sdk/asset/services/finality"
	"github.com/nftmint-labs/asset-sdk/asset/services/issuance"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/nftmint-labs/asset-sdk/asset/services/metadata/sql"
	"github.com/nftmint-labs/asset-sdk/asset/services/metrics"
	"github.com/nftmint-labs/asset-sdk/asset/services/network/memory"
	"github.com/nftmint-labs/asset-sdk/asset/services/network/solana"
	"github.com/nftmint-labs/asset-sdk/asset/services/replay"
	"github.com/nftmint-labs/asset-sdk/asset/services/signer"
	"github.com/nftmint-labs/asset-sdk/asset/services/sigverify"
	"github.com/nftmint-labs/asset-sdk/asset/services/transfer"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/dig"
)

var logger = logging.MustGetLogger("sdk")

// SDK wires the services of the asset sdk in a dig container
type SDK struct {
	container *dig.Container
	config    *config.Configuration

	ledger         driver.Ledger
	secrets        driver.SecretProvider
	tracerProvider trace.TracerProvider
	registerer     prometheus.Registerer
	installed      bool

	mu      sync.Mutex
	closers []func() error
}

type Option func(*SDK)

// WithLedger replaces the ledger selected by the configuration
func WithLedger(ledger driver.Ledger) Option {
	return func(s *SDK) { s.ledger = ledger }
}

// WithSecretProvider replaces the issuer secret provider selected by the configuration
func WithSecretProvider(secrets driver.SecretProvider) Option {
	return func(s *SDK) { s.secrets = secrets }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *SDK) { s.tracerProvider = tp }
}

func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(s *SDK) { s.registerer = registerer }
}

func NewSDK(c *config.Configuration, opts ...Option) *SDK {
	s := &SDK{
		container:      dig.New(),
		config:         c,
		tracerProvider: noop.NewTracerProvider(),
		registerer:     prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SDK) Container() *dig.Container { return s.container }

type issuanceDeps struct {
	dig.In

	Verifier       *sigverify.Verifier
	Guard          *replay.Guard
	Resolver       *accounts.Resolver
	Estimator      *fees.Estimator
	Signer         *signer.Context
	Ledger         driver.Ledger
	Watcher        *finality.Watcher
	Store          driver.MetadataStore `optional:"true"`
	Config         *config.Configuration
	TracerProvider trace.TracerProvider
	Metrics        *metrics.Metrics
}

type transferDeps struct {
	dig.In

	Resolver       *accounts.Resolver
	Estimator      *fees.Estimator
	Signer         *signer.Context
	Ledger         driver.Ledger
	Watcher        *finality.Watcher
	Keyring        *signer.Keyring
	Config         *config.Configuration
	TracerProvider trace.TracerProvider
	Metrics        *metrics.Metrics
}

// Install registers every constructor. Services are built lazily on first use.
func (s *SDK) Install() error {
	if s.installed {
		return nil
	}
	c := s.container
	err := errors2.Join(
		c.Provide(func() *config.Configuration { return s.config }),
		c.Provide(func() trace.TracerProvider { return s.tracerProvider }),
		c.Provide(func() prometheus.Registerer { return s.registerer }),
		c.Provide(s.newLedger),
		c.Provide(s.newSecretProvider),
		c.Provide(newSignerContext),
		c.Provide(func() *signer.Keyring { return signer.NewKeyring() }),
		c.Provide(sigverify.NewVerifier),
		c.Provide(s.newGuard),
		c.Provide(s.newResolver),
		c.Provide(func(l driver.Ledger, c *config.Configuration) (*fees.Estimator, error) {
			return fees.NewEstimator(l, c.Fees)
		}),
		c.Provide(func(l driver.Ledger, c *config.Configuration, tp trace.TracerProvider) *finality.Watcher {
			return finality.NewWatcher(l, c.Watcher, tp)
		}),
		c.Provide(func(r prometheus.Registerer, c *config.Configuration) (*metrics.Metrics, error) {
			return metrics.New(r, c.Metrics.Network)
		}),
		c.Provide(newIssuanceService),
		c.Provide(newTransferService),
		c.Provide(func(service issuance.Service, c *config.Configuration) *batch.Issuer {
			return batch.NewIssuer(service, c.Batch.Workers)
		}),
	)
	if err != nil {
		return errors.WithMessagef(err, "failed setting up dig container")
	}
	if s.config.Metadata.Driver == "sqlite" || s.config.Metadata.Driver == "postgres" {
		err = c.Provide(func(c *config.Configuration) (*sql.Store, error) {
			store, err := sql.Open(sql.Config{
				Driver:      c.Metadata.Driver,
				DSN:         c.Metadata.DSN,
				TablePrefix: c.Metadata.TablePrefix,
				BaseURL:     c.Metadata.BaseURL,
			})
			if err != nil {
				return nil, err
			}
			s.onClose(store.Close)
			return store, nil
		}, dig.As(new(driver.MetadataStore)))
		if err != nil {
			return errors.WithMessagef(err, "failed setting up metadata store")
		}
	}
	s.installed = true
	logger.Infof("sdk installed with ledger driver [%s]", s.config.Ledger.Driver)
	return nil
}

func (s *SDK) newLedger(c *config.Configuration) (driver.Ledger, error) {
	if s.ledger != nil {
		return s.ledger, nil
	}
	switch c.Ledger.Driver {
	case config.SolanaDriver:
		return solana.NewLedger(c.Ledger.Config), nil
	case config.MemoryDriver:
		return memory.NewLedger(), nil
	default:
		return nil, errors.Errorf("unknown ledger driver [%s]", c.Ledger.Driver)
	}
}

func (s *SDK) newGuard(c *config.Configuration) (*replay.Guard, error) {
	g := replay.NewGuard(c.Replay.TTL, c.Replay.MaxItems)
	s.onClose(func() error { g.Close(); return nil })
	return g, nil
}

func (s *SDK) newResolver(l driver.Ledger) (*accounts.Resolver, error) {
	r, err := accounts.NewResolver(l)
	if err != nil {
		return nil, err
	}
	s.onClose(func() error { r.Close(); return nil })
	return r, nil
}

func (s *SDK) onClose(f func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, f)
}

func (s *SDK) newSecretProvider(c *config.Configuration) (driver.SecretProvider, error) {
	if s.secrets != nil {
		return s.secrets, nil
	}
	return NewSecretProvider(c.Issuer)
}

// NewSecretProvider returns the issuer secret provider selected by the configuration
func NewSecretProvider(c config.Issuer) (driver.SecretProvider, error) {
	switch c.Source {
	case config.EnvSource, "":
		variable := c.Env
		if len(variable) == 0 {
			variable = config.PrivateKeyVariable
		}
		return &signer.EnvProvider{Variable: variable}, nil
	case config.FileSource:
		return &signer.FileProvider{Path: c.File}, nil
	case config.MnemonicSource:
		return &signer.MnemonicProvider{Mnemonic: c.Mnemonic, Passphrase: c.Passphrase}, nil
	case config.VaultSource:
		return signer.NewVaultProvider(c.Vault.Address, c.Vault.Token, c.Vault.Mount, c.Vault.Path, c.Vault.Field)
	default:
		return nil, errors.Errorf("unknown issuer source [%s]", c.Source)
	}
}

func newSignerContext(secrets driver.SecretProvider, ledger driver.Ledger) (*signer.Context, error) {
	sk, err := secrets.IssuerKey(context.Background())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed loading issuer key")
	}
	kp, err := signer.FromPrivateKey(sk)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid issuer key")
	}
	logger.Infof("issuer identity [%s]", kp.Identity())
	return signer.NewContext(kp, ledger), nil
}

func newIssuanceService(d issuanceDeps) issuance.Service {
	o := issuance.NewOrchestrator(d.Verifier, d.Guard, d.Resolver, d.Estimator, d.Signer, d.Ledger, d.Watcher, d.Store, d.Config.Watcher.Timeout, d.TracerProvider)
	return metrics.NewObservableIssuanceService(o, d.Metrics)
}

func newTransferService(d transferDeps) transfer.Service {
	o := transfer.NewOrchestrator(d.Resolver, d.Estimator, d.Signer, d.Ledger, d.Watcher, d.Keyring, d.Config.Watcher.Timeout, d.TracerProvider)
	return metrics.NewObservableTransferService(o, d.Metrics)
}

func get[T any](s *SDK) (T, error) {
	var out T
	if err := s.Install(); err != nil {
		return out, err
	}
	err := s.container.Invoke(func(v T) { out = v })
	if err != nil {
		return out, errors.WithMessagef(err, "failed resolving %T", out)
	}
	return out, nil
}

func (s *SDK) Ledger() (driver.Ledger, error)             { return get[driver.Ledger](s) }
func (s *SDK) Signer() (*signer.Context, error)           { return get[*signer.Context](s) }
func (s *SDK) Keyring() (*signer.Keyring, error)          { return get[*signer.Keyring](s) }
func (s *SDK) Resolver() (*accounts.Resolver, error)      { return get[*accounts.Resolver](s) }
func (s *SDK) Estimator() (*fees.Estimator, error)        { return get[*fees.Estimator](s) }
func (s *SDK) Watcher() (*finality.Watcher, error)        { return get[*finality.Watcher](s) }
func (s *SDK) IssuanceService() (issuance.Service, error) { return get[issuance.Service](s) }
func (s *SDK) TransferService() (transfer.Service, error) { return get[transfer.Service](s) }
func (s *SDK) BatchIssuer() (*batch.Issuer, error)        { return get[*batch.Issuer](s) }

// Close releases the caches and connections opened by the services built so far
func (s *SDK) Close() error {
	s.mu.Lock()
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()
	var errs []error
	for _, f := range closers {
		errs = append(errs, f())
	}
	return errors2.Join(errs...)
}
