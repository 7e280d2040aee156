/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package version

import (
	"fmt"
	"runtime"

	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/common"
	"github.com/spf13/cobra"
)

const ProgramName = "assetctl"

// Version is set at build time
var Version = "development build"

// Cmd returns the Cobra Command for Version
func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print current version of assetctl.",
		Long:  `Print current version of assetctl.`,
		Args:  common.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, err := fmt.Fprint(cmd.OutOrStdout(), GetInfo())
			return err
		},
	}
}

// GetInfo returns version information for assetctl
func GetInfo() string {
	return fmt.Sprintf("%s:\n Version: %s\n Go version: %s\n OS/Arch: %s\n",
		ProgramName, Version, runtime.Version(),
		fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
}
