/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/pkg/errors"
)

// Document is the off-ledger JSON document the metadata record URI points to
type Document struct {
	Name        string            `json:"name"`
	Symbol      string            `json:"symbol"`
	Description string            `json:"description,omitempty"`
	Image       string            `json:"image,omitempty"`
	Attributes  []asset.Attribute `json:"attributes,omitempty"`
}

// NewDocument returns the document describing d
func NewDocument(d asset.Descriptor) *Document {
	return &Document{
		Name:        d.Name,
		Symbol:      d.Symbol,
		Description: d.Description,
		Image:       d.Image,
		Attributes:  d.Attributes,
	}
}

// Bytes returns the canonical encoding of the document
func (d *Document) Bytes() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "failed encoding metadata document")
	}
	return raw, nil
}

// Hash returns the hex encoded sha256 of the canonical encoding
func Hash(raw []byte) string {
	h := sha256.Sum256(raw)
	return hex.EncodeToString(h[:])
}
