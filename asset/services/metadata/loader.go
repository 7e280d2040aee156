/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// LoadDescriptor reads a descriptor from a JSON or YAML file, chosen by extension
func LoadDescriptor(path string) (asset.Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return asset.Descriptor{}, errors.Wrapf(err, "failed reading descriptor [%s]", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseDescriptor(raw, yaml.Unmarshal)
	default:
		return ParseDescriptor(raw, json.Unmarshal)
	}
}

// ParseDescriptor decodes a descriptor. Scalars are converted weakly, so that numeric
// attribute values become strings.
func ParseDescriptor(raw []byte, unmarshal func([]byte, interface{}) error) (asset.Descriptor, error) {
	var m map[string]interface{}
	if err := unmarshal(raw, &m); err != nil {
		return asset.Descriptor{}, errors.Wrap(err, "failed parsing descriptor")
	}
	var d asset.Descriptor
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &d,
	})
	if err != nil {
		return asset.Descriptor{}, errors.Wrap(err, "failed creating decoder")
	}
	if err := decoder.Decode(m); err != nil {
		return asset.Descriptor{}, errors.Wrap(asset.ErrValidation, err.Error())
	}
	return d, nil
}
