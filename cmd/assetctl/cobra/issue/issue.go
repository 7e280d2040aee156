/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/batch"
	"github.com/nftmint-labs/asset-sdk/asset/services/metadata"
	"github.com/nftmint-labs/asset-sdk/asset/services/signer"
	"github.com/nftmint-labs/asset-sdk/cmd/assetctl/cobra/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

type Result struct {
	Record  *asset.Record  `json:"record,omitempty" yaml:"record,omitempty"`
	Outcome *asset.Outcome `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// Cmd returns the Cobra Command issuing a single asset
func Cmd(opts *common.Options) *cobra.Command {
	var descriptorFile, ownerKeyFile, message, signature string
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue an asset to an owner.",
		Long: `Issue a single unit asset to an owner. The owner proves control of its identity
with a signed message, either passed with --message and --signature or produced from --owner-key.`,
		Args: common.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := metadata.LoadDescriptor(descriptorFile)
			if err != nil {
				return err
			}
			assertion, err := signedAssertion(cmd, d, ownerKeyFile, message, signature)
			if err != nil {
				return err
			}

			s, err := opts.SDK()
			if err != nil {
				return err
			}
			defer s.Close()
			service, err := s.IssuanceService()
			if err != nil {
				return err
			}
			record, outcome, err := service.Issue(cmd.Context(), d, assertion.Identity, assertion)
			if err != nil {
				return err
			}
			return opts.Print(cmd.OutOrStdout(), Result{Record: record, Outcome: outcome})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&descriptorFile, "descriptor", "d", "", "asset descriptor file, json or yaml")
	flags.String("owner", "", "owner identity, required without --owner-key")
	flags.StringVar(&ownerKeyFile, "owner-key", "", "owner key file used to sign the assertion")
	flags.StringVar(&message, "message", "", "message signed by the owner")
	flags.StringVar(&signature, "signature", "", "base58 signature of the message")
	_ = cmd.MarkFlagRequired("descriptor")
	return cmd
}

func signedAssertion(cmd *cobra.Command, d asset.Descriptor, ownerKeyFile, message, signature string) (*asset.SignedAssertion, error) {
	if len(ownerKeyFile) != 0 {
		sk, err := (&signer.FileProvider{Path: ownerKeyFile}).IssuerKey(cmd.Context())
		if err != nil {
			return nil, err
		}
		kp, err := signer.FromPrivateKey(sk)
		if err != nil {
			return nil, err
		}
		if len(message) == 0 {
			message = fmt.Sprintf("issue %s to %s at %s", d.Symbol, kp.Identity(), time.Now().UTC().Format(time.RFC3339Nano))
		}
		sig, err := kp.Sign([]byte(message))
		if err != nil {
			return nil, err
		}
		return &asset.SignedAssertion{Identity: kp.Identity(), Message: []byte(message), Signature: sig}, nil
	}
	owner, err := common.Identity(cmd, "owner")
	if err != nil {
		return nil, err
	}
	a := batch.Assertion{Identity: owner, Message: message, Signature: signature}
	if len(message) == 0 || len(signature) == 0 {
		return nil, errors.New("--message and --signature are required without --owner-key")
	}
	return a.Decode()
}

// BatchCmd returns the Cobra Command issuing the assets listed in a file
func BatchCmd(opts *common.Options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch-issue",
		Short: "Issue the assets listed in a file.",
		Long:  `Issue the assets listed in a json or yaml file. Every entry carries a descriptor, an owner and its signed assertion.`,
		Args:  common.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			requests, err := LoadRequests(file)
			if err != nil {
				return err
			}
			s, err := opts.SDK()
			if err != nil {
				return err
			}
			defer s.Close()
			issuer, err := s.BatchIssuer()
			if err != nil {
				return err
			}
			results, err := issuer.Issue(cmd.Context(), requests)
			if err != nil {
				return err
			}
			if err := opts.Print(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			for _, r := range results {
				if r.Err != nil {
					return errors.New("some issuances failed")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "requests file, json or yaml")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// LoadRequests reads a list of issuance requests. The format follows the file extension.
func LoadRequests(path string) ([]batch.Request, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading requests [%s]", path)
	}
	var requests []batch.Request
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &requests)
	default:
		err = json.Unmarshal(raw, &requests)
	}
	if err != nil {
		return nil, errors.Wrapf(asset.ErrValidation, "invalid requests [%s]: %s", path, err)
	}
	return requests, nil
}
