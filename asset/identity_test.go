/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package asset_test

import (
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	raw := make([]byte, asset.IdentitySize)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	text := base58.Encode(raw)

	id, err := asset.ParseIdentity(text)
	require.NoError(t, err)
	assert.Equal(t, raw, id.Bytes())
	assert.Equal(t, text, id.String())
	assert.False(t, id.IsNone())
	assert.True(t, id.Equal(asset.MustParseIdentity(text)))

	for _, bad := range []string{"", "0OIl", base58.Encode([]byte("short"))} {
		_, err := asset.ParseIdentity(bad)
		require.Error(t, err, bad)
		assert.ErrorIs(t, err, asset.ErrValidation)
	}
	assert.Panics(t, func() { asset.MustParseIdentity("") })
	assert.True(t, asset.Identity{}.IsNone())
}

func TestIdentityText(t *testing.T) {
	id, err := asset.IdentityFromBytes(make([]byte, asset.IdentitySize))
	require.NoError(t, err)
	id[0] = 7

	raw, err := json.Marshal(map[string]asset.Identity{"owner": id})
	require.NoError(t, err)
	assert.Contains(t, string(raw), id.String())

	var decoded map[string]asset.Identity
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, id, decoded["owner"])

	var bad asset.Identity
	require.Error(t, bad.UnmarshalText([]byte("not-base58!")))
}
