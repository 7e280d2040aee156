/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/batch"
	"github.com/nftmint-labs/asset-sdk/asset/services/fees"
	"github.com/nftmint-labs/asset-sdk/asset/services/finality"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/nftmint-labs/asset-sdk/asset/services/network/solana"
	"github.com/nftmint-labs/asset-sdk/asset/services/replay"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var logger = logging.MustGetLogger("config")

const (
	EnvPrefix = "ASSETSDK"

	// RPCURLVariable and PrivateKeyVariable are honored next to the prefixed variables
	RPCURLVariable     = "SOLANA_RPC_URL"
	PrivateKeyVariable = "SOLANA_PRIVATE_KEY"

	SolanaDriver = "solana"
	MemoryDriver = "memory"

	EnvSource      = "env"
	FileSource     = "file"
	MnemonicSource = "mnemonic"
	VaultSource    = "vault"

	NoMetadataStore = "none"
)

type Ledger struct {
	Driver        string `mapstructure:"driver"`
	solana.Config `mapstructure:",squash"`
}

type Vault struct {
	Address string `mapstructure:"address"`
	Token   string `mapstructure:"token"`
	Mount   string `mapstructure:"mount"`
	Path    string `mapstructure:"path"`
	Field   string `mapstructure:"field"`
}

type Issuer struct {
	Source     string `mapstructure:"source"`
	Env        string `mapstructure:"env"`
	File       string `mapstructure:"file"`
	Mnemonic   string `mapstructure:"mnemonic"`
	Passphrase string `mapstructure:"passphrase"`
	Vault      Vault  `mapstructure:"vault"`
}

type Metadata struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	TablePrefix string `mapstructure:"table_prefix"`
	BaseURL     string `mapstructure:"base_url"`
}

type Replay struct {
	TTL      time.Duration `mapstructure:"ttl"`
	MaxItems int           `mapstructure:"max_items"`
}

type Batch struct {
	Workers int `mapstructure:"workers"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Metrics struct {
	Network string `mapstructure:"network"`
}

// Configuration is the whole configuration of the sdk
type Configuration struct {
	Ledger   Ledger          `mapstructure:"ledger"`
	Issuer   Issuer          `mapstructure:"issuer"`
	Fees     fees.Config     `mapstructure:"fees"`
	Watcher  finality.Config `mapstructure:"watcher"`
	Metadata Metadata        `mapstructure:"metadata"`
	Replay   Replay          `mapstructure:"replay"`
	Batch    Batch           `mapstructure:"batch"`
	Logging  Logging         `mapstructure:"logging"`
	Metrics  Metrics         `mapstructure:"metrics"`
}

// SetDefaults installs the default values of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ledger.driver", SolanaDriver)
	v.SetDefault("ledger.rpc_url", solana.DevnetRPCURL)
	v.SetDefault("ledger.commitment", "finalized")
	v.SetDefault("ledger.requests_per_second", solana.DefaultRequestsPerSecond)
	v.SetDefault("issuer.source", EnvSource)
	v.SetDefault("issuer.env", PrivateKeyVariable)
	v.SetDefault("issuer.vault.field", "private_key")
	v.SetDefault("fees.surcharge_bps", fees.DefaultSurchargeBasisPoints)
	v.SetDefault("watcher.timeout", finality.DefaultTimeout)
	v.SetDefault("watcher.initial_interval", finality.DefaultInitialInterval)
	v.SetDefault("watcher.max_interval", finality.DefaultMaxInterval)
	v.SetDefault("watcher.multiplier", finality.DefaultMultiplier)
	v.SetDefault("metadata.driver", NoMetadataStore)
	v.SetDefault("replay.ttl", replay.DefaultTTL)
	v.SetDefault("replay.max_items", replay.DefaultMaxItems)
	v.SetDefault("batch.workers", batch.DefaultWorkers)
	v.SetDefault("logging.level", "info")
	v.SetDefault("metrics.network", "devnet")
}

// New returns a viper instance reading the environment with the sdk prefix.
// If path is not empty, the file is read as well.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ledger.rpc_url", EnvPrefix+"_LEDGER_RPC_URL", RPCURLVariable); err != nil {
		return nil, errors.Wrap(err, "failed binding rpc url")
	}
	if len(path) != 0 {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed reading config file [%s]", path)
		}
		logger.Infof("configuration loaded from [%s]", path)
	}
	return v, nil
}

// Load reads the configuration from path and the environment
func Load(path string) (*Configuration, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(v)
}

// Unmarshal decodes the configuration held by v and checks it
func Unmarshal(v *viper.Viper) (*Configuration, error) {
	c := &Configuration{}
	err := v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, "failed decoding configuration")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := logging.SetLevel(c.Logging.Level); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values that cannot be defaulted
func (c *Configuration) Validate() error {
	switch c.Ledger.Driver {
	case SolanaDriver, MemoryDriver:
	default:
		return errors.Wrapf(asset.ErrValidation, "unknown ledger driver [%s]", c.Ledger.Driver)
	}
	switch c.Issuer.Source {
	case EnvSource:
		if len(c.Issuer.Env) == 0 {
			return errors.Wrap(asset.ErrValidation, "issuer.env must name a variable")
		}
	case FileSource:
		if len(c.Issuer.File) == 0 {
			return errors.Wrap(asset.ErrValidation, "issuer.file must name a key file")
		}
	case MnemonicSource:
		if len(c.Issuer.Mnemonic) == 0 {
			return errors.Wrap(asset.ErrValidation, "issuer.mnemonic is empty")
		}
	case VaultSource:
		if len(c.Issuer.Vault.Mount) == 0 || len(c.Issuer.Vault.Path) == 0 {
			return errors.Wrap(asset.ErrValidation, "issuer.vault requires mount and path")
		}
	default:
		return errors.Wrapf(asset.ErrValidation, "unknown issuer source [%s]", c.Issuer.Source)
	}
	if c.Fees.SurchargeBasisPoints > fees.MaxSurchargeBasisPoints {
		return errors.Wrapf(asset.ErrValidation, "fees.surcharge_bps [%d] exceeds [%d]", c.Fees.SurchargeBasisPoints, fees.MaxSurchargeBasisPoints)
	}
	if len(c.Fees.Treasury) != 0 {
		if _, err := asset.ParseIdentity(c.Fees.Treasury); err != nil {
			return errors.WithMessage(err, "fees.treasury")
		}
	}
	if c.Watcher.Timeout <= 0 {
		return errors.Wrapf(asset.ErrValidation, "watcher.timeout must be positive, got [%s]", c.Watcher.Timeout)
	}
	switch c.Metadata.Driver {
	case NoMetadataStore, "":
	case "sqlite", "postgres":
		if len(c.Metadata.BaseURL) == 0 {
			return errors.Wrap(asset.ErrValidation, "metadata.base_url is required with a metadata store")
		}
	default:
		return errors.Wrapf(asset.ErrValidation, "unknown metadata driver [%s]", c.Metadata.Driver)
	}
	return nil
}
