/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transfer

import (
	"github.com/nftmint-labs/asset-sdk/asset/services/signer"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/common"
	"github.com/spf13/cobra"
)

// Cmd returns the Cobra Command transferring an asset
func Cmd(opts *common.Options) *cobra.Command {
	var sourceKeyFile string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer an asset to a new owner.",
		Long:  `Transfer the single unit of an asset from the owner holding --source-key to --to. The issuer pays the fees.`,
		Args:  common.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			assetAddress, err := common.Identity(cmd, "asset")
			if err != nil {
				return err
			}
			destination, err := common.Identity(cmd, "to")
			if err != nil {
				return err
			}
			sk, err := (&signer.FileProvider{Path: sourceKeyFile}).IssuerKey(cmd.Context())
			if err != nil {
				return err
			}
			source, err := signer.FromPrivateKey(sk)
			if err != nil {
				return err
			}

			s, err := opts.SDK()
			if err != nil {
				return err
			}
			defer s.Close()
			keyring, err := s.Keyring()
			if err != nil {
				return err
			}
			keyring.Add(source)
			service, err := s.TransferService()
			if err != nil {
				return err
			}
			outcome, err := service.Transfer(cmd.Context(), assetAddress, source.Identity(), destination)
			if err != nil {
				return err
			}
			return opts.Print(cmd.OutOrStdout(), outcome)
		},
	}
	flags := cmd.Flags()
	flags.String("asset", "", "asset address")
	flags.String("to", "", "destination owner identity")
	flags.StringVar(&sourceKeyFile, "source-key", "", "key file of the current owner")
	_ = cmd.MarkFlagRequired("asset")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("source-key")
	return cmd
}
