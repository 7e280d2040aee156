/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/sdk"
	"github.com/nftmint-labs/asset-sdk/asset/services/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	JSON = "json"
	YAML = "yaml"
)

// Options are shared by every command
type Options struct {
	ConfigFile string
	Output     string
	// SDKOptions are passed to the sdk built by the commands
	SDKOptions []sdk.Option
}

// AddFlags installs the persistent flags on the root command
func (o *Options) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.ConfigFile, "config", "c", "", "configuration file")
	flags.StringVarP(&o.Output, "output", "o", JSON, "output format, json or yaml")
}

// SDK loads the configuration and returns a new sdk. The caller closes it.
func (o *Options) SDK() (*sdk.SDK, error) {
	c, err := config.Load(o.ConfigFile)
	if err != nil {
		return nil, err
	}
	return sdk.NewSDK(c, o.SDKOptions...), nil
}

// Print renders v in the selected output format
func (o *Options) Print(w io.Writer, v any) error {
	var raw []byte
	var err error
	switch o.Output {
	case JSON, "":
		raw, err = json.MarshalIndent(v, "", "  ")
	case YAML:
		raw, err = yaml.Marshal(v)
	default:
		return errors.Errorf("unknown output format [%s]", o.Output)
	}
	if err != nil {
		return errors.Wrap(err, "failed rendering output")
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

// NoArgs fails when positional arguments are passed
func NoArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("trailing args detected")
	}
	return nil
}

// Identity parses the value of the named flag
func Identity(cmd *cobra.Command, flag string) (asset.Identity, error) {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		return asset.Identity{}, err
	}
	id, err := asset.ParseIdentity(v)
	if err != nil {
		return asset.Identity{}, errors.WithMessagef(err, "invalid --%s", flag)
	}
	return id, nil
}

// Lamports pairs an amount in lamports with its SOL rendering
type Lamports struct {
	Lamports uint64 `json:"lamports" yaml:"lamports"`
	SOL      string `json:"sol" yaml:"sol"`
}

func NewLamports(v uint64) Lamports {
	return Lamports{Lamports: v, SOL: asset.ToSOL(v).String()}
}
