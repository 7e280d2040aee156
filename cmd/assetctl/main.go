/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/accounts"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/common"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/fees"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/issue"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/transfer"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/version"
	"github.com/spf13/cobra"
)

// NewRootCmd returns the assetctl command tree
func NewRootCmd(opts *common.Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "assetctl",
		Short: "Issue and transfer single unit assets.",
		Long:  `assetctl issues single unit assets with their metadata and edition records and transfers them between owners.`,
	}
	opts.AddFlags(root)
	root.AddCommand(version.Cmd())
	root.AddCommand(fees.Cmd(opts))
	root.AddCommand(accounts.ResolveCmd(opts))
	root.AddCommand(accounts.BalanceCmd(opts))
	root.AddCommand(issue.Cmd(opts))
	root.AddCommand(issue.BatchCmd(opts))
	root.AddCommand(transfer.Cmd(opts))
	return root
}

func main() {
	if err := NewRootCmd(&common.Options{}).Execute(); err != nil {
		os.Exit(1)
	}
}
