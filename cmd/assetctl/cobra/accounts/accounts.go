/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package accounts

import (
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/driver"
	"github.com/nftmint-labs/asset-sdk/asset/services/accounts"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type Addresses struct {
	Asset    asset.Identity  `json:"asset" yaml:"asset"`
	Metadata asset.Identity  `json:"metadata" yaml:"metadata"`
	Edition  asset.Identity  `json:"edition" yaml:"edition"`
	Owner    *asset.Identity `json:"owner,omitempty" yaml:"owner,omitempty"`
	Holding  *asset.Identity `json:"holding,omitempty" yaml:"holding,omitempty"`
	Exists   *bool           `json:"exists,omitempty" yaml:"exists,omitempty"`
}

// ResolveCmd returns the Cobra Command deriving the addresses of an asset
func ResolveCmd(opts *common.Options) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Derive the accounts of an asset.",
		Long:  `Derive the metadata, edition and, given an owner, holding account addresses of an asset.`,
		Args:  common.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			assetAddress, err := common.Identity(cmd, "asset")
			if err != nil {
				return err
			}
			out := Addresses{Asset: assetAddress}
			if out.Metadata, err = accounts.MetadataAccount(assetAddress); err != nil {
				return err
			}
			if out.Edition, err = accounts.EditionAccount(assetAddress); err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetString("owner"); len(v) != 0 {
				owner, err := common.Identity(cmd, "owner")
				if err != nil {
					return err
				}
				holding, err := accounts.HoldingAccount(assetAddress, owner)
				if err != nil {
					return err
				}
				out.Owner, out.Holding = &owner, &holding
				if check {
					s, err := opts.SDK()
					if err != nil {
						return err
					}
					defer s.Close()
					resolver, err := s.Resolver()
					if err != nil {
						return err
					}
					exists, err := resolver.Exists(cmd.Context(), holding)
					if err != nil {
						return errors.WithMessagef(err, "failed checking holding account")
					}
					out.Exists = &exists
				}
			}
			return opts.Print(cmd.OutOrStdout(), out)
		},
	}
	flags := cmd.Flags()
	flags.String("asset", "", "asset address")
	flags.String("owner", "", "owner identity")
	flags.BoolVar(&check, "check", false, "check on the ledger that the holding account exists")
	_ = cmd.MarkFlagRequired("asset")
	return cmd
}

type Balance struct {
	Account common.Lamports `json:"account" yaml:"account"`
	Asset   *AssetBalance   `json:"asset,omitempty" yaml:"asset,omitempty"`
}

type AssetBalance struct {
	Address asset.Identity `json:"address" yaml:"address"`
	Holding asset.Identity `json:"holding" yaml:"holding"`
	Units   uint64         `json:"units" yaml:"units"`
}

// BalanceCmd returns the Cobra Command reading the balance of a wallet
func BalanceCmd(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the balance of a wallet.",
		Long:  `Show the balance of a wallet in lamports and SOL and, given an asset, the units it holds.`,
		Args:  common.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			account, err := common.Identity(cmd, "account")
			if err != nil {
				return err
			}
			s, err := opts.SDK()
			if err != nil {
				return err
			}
			defer s.Close()
			ledger, err := s.Ledger()
			if err != nil {
				return err
			}
			lamports, err := ledger.Lamports(cmd.Context(), account)
			if err != nil {
				return errors.WithMessagef(err, "failed reading balance of [%s]", account)
			}
			out := Balance{Account: common.NewLamports(lamports)}
			if v, _ := cmd.Flags().GetString("asset"); len(v) != 0 {
				assetAddress, err := common.Identity(cmd, "asset")
				if err != nil {
					return err
				}
				holding, err := accounts.HoldingAccount(assetAddress, account)
				if err != nil {
					return err
				}
				units, err := ledger.Balance(cmd.Context(), holding)
				if err != nil && !errors.Is(err, driver.ErrAccountNotFound) {
					return errors.WithMessagef(err, "failed reading holding account [%s]", holding)
				}
				out.Asset = &AssetBalance{Address: assetAddress, Holding: holding, Units: units}
			}
			return opts.Print(cmd.OutOrStdout(), out)
		},
	}
	flags := cmd.Flags()
	flags.String("account", "", "wallet identity")
	flags.String("asset", "", "asset address")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
