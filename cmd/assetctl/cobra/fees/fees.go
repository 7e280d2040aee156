/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fees

import (
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type Estimate struct {
	Operation string             `json:"operation" yaml:"operation"`
	Breakdown asset.FeeBreakdown `json:"breakdown" yaml:"breakdown"`
	RentSOL   string             `json:"rent_sol" yaml:"rent_sol"`
	TotalSOL  string             `json:"total_sol" yaml:"total_sol"`
}

// Cmd returns the Cobra Command for fee estimates
func Cmd(opts *common.Options) *cobra.Command {
	var transfer, createDestination bool
	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Estimate the cost of an issuance or a transfer.",
		Long:  `Estimate the cost of an issuance or a transfer from the live rent parameters of the ledger.`,
		Args:  common.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := opts.SDK()
			if err != nil {
				return err
			}
			defer s.Close()
			estimator, err := s.Estimator()
			if err != nil {
				return err
			}

			e := Estimate{Operation: "issue"}
			if transfer {
				e.Operation = "transfer"
				e.Breakdown, err = estimator.EstimateTransfer(cmd.Context(), createDestination)
			} else {
				e.Breakdown, err = estimator.EstimateIssuance(cmd.Context())
			}
			if err != nil {
				return errors.WithMessagef(err, "failed estimating %s", e.Operation)
			}
			e.RentSOL = asset.ToSOL(e.Breakdown.RentSubtotal()).String()
			e.TotalSOL = e.Breakdown.TotalSOL().String()
			return opts.Print(cmd.OutOrStdout(), e)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&transfer, "transfer", false, "estimate a transfer instead of an issuance")
	flags.BoolVar(&createDestination, "create-destination", true, "the transfer creates the destination holding account")
	return cmd
}
