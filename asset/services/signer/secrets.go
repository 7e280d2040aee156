/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"os"
	"strconv"
	"strings"

	vault "github.com/hashicorp/vault/api"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// ErrSecretNotFound is returned when a provider has no secret to offer
var ErrSecretNotFound = errors.New("secret not found")

// ParseKey decodes an ed25519 private key from text.
// Accepted forms are a comma separated list of byte values, optionally in brackets as written
// by solana-keygen, or a base58 string. Both a 64 byte key pair and a 32 byte seed are accepted.
func ParseKey(text string) (ed25519.PrivateKey, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return nil, ErrSecretNotFound
	}
	var raw []byte
	var err error
	if strings.HasPrefix(text, "[") || strings.Contains(text, ",") {
		raw, err = parseByteList(text)
	} else {
		raw, err = base58.Decode(text)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed decoding secret key")
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		sk := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
		if !bytes.Equal(sk[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
			return nil, errors.New("secret key does not match its public key")
		}
		return sk, nil
	}
	return nil, errors.Errorf("invalid secret key length [%d]", len(raw))
}

func parseByteList(text string) ([]byte, error) {
	text = strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
	parts := strings.Split(text, ",")
	raw := make([]byte, 0, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid byte at position [%d]", i)
		}
		raw = append(raw, byte(v))
	}
	return raw, nil
}

// EnvProvider reads the issuer key from an environment variable
type EnvProvider struct {
	Variable string
}

func (p *EnvProvider) IssuerKey(context.Context) (ed25519.PrivateKey, error) {
	v, ok := os.LookupEnv(p.Variable)
	if !ok {
		return nil, errors.Wrapf(ErrSecretNotFound, "variable [%s] not set", p.Variable)
	}
	return ParseKey(v)
}

// StaticProvider holds the issuer key as text, as loaded by the configuration layer
type StaticProvider struct {
	Secret string
}

func (p *StaticProvider) IssuerKey(context.Context) (ed25519.PrivateKey, error) {
	return ParseKey(p.Secret)
}

// FileProvider reads the issuer key from a key file
type FileProvider struct {
	Path string
}

func (p *FileProvider) IssuerKey(context.Context) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading key file [%s]", p.Path)
	}
	return ParseKey(string(raw))
}

// MnemonicProvider derives the issuer key from a BIP-39 mnemonic.
// The key seed is the first 32 bytes of the BIP-39 seed.
type MnemonicProvider struct {
	Mnemonic   string
	Passphrase string
}

func (p *MnemonicProvider) IssuerKey(context.Context) (ed25519.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(strings.TrimSpace(p.Mnemonic), p.Passphrase)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mnemonic")
	}
	return ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize]), nil
}

// VaultProvider reads the issuer key from a HashiCorp Vault KV version 2 secret
type VaultProvider struct {
	Client *vault.Client
	Mount  string
	Path   string
	Field  string
}

func NewVaultProvider(address, token, mount, path, field string) (*VaultProvider, error) {
	cfg := vault.DefaultConfig()
	if len(address) != 0 {
		cfg.Address = address
	}
	client, err := vault.NewClient(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating vault client")
	}
	if len(token) != 0 {
		client.SetToken(token)
	}
	return &VaultProvider{Client: client, Mount: mount, Path: path, Field: field}, nil
}

func (p *VaultProvider) IssuerKey(ctx context.Context) (ed25519.PrivateKey, error) {
	id := strings.Trim(p.Mount, "/") + "/data/" + strings.Trim(p.Path, "/")
	secret, err := p.Client.Logical().ReadWithContext(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading secret [%s]", id)
	}
	if secret == nil || len(secret.Data) == 0 {
		return nil, errors.Wrapf(ErrSecretNotFound, "secret [%s] does not exist", id)
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("invalid secret [%s]: missing data", id)
	}
	value, ok := data[p.Field].(string)
	if !ok {
		return nil, errors.Wrapf(ErrSecretNotFound, "field [%s] not found in secret [%s]", p.Field, id)
	}
	return ParseKey(value)
}
