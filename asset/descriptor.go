/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package asset

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field limits enforced by the metadata program
const (
	MaxNameLength        = 32
	MaxSymbolLength      = 10
	MaxURILength         = 200
	MaxDescriptionLength = 1000
	MaxAttributes        = 32
	MaxAttributeLength   = 64
)

var allowedSchemes = map[string]bool{"http": true, "https": true, "ipfs": true, "ar": true}

// Attribute is a (trait, value) pair attached to an asset
type Attribute struct {
	TraitType string `json:"trait_type" yaml:"trait_type" mapstructure:"trait_type"`
	Value     string `json:"value" yaml:"value" mapstructure:"value"`
}

// Descriptor holds the caller supplied attributes of an asset.
type Descriptor struct {
	Name        string      `json:"name" yaml:"name" mapstructure:"name"`
	Symbol      string      `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	URI         string      `json:"uri" yaml:"uri" mapstructure:"uri"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Image       string      `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
	Attributes  []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
}

// Validate checks lengths and charset of every field. It does not touch the ledger.
func (d *Descriptor) Validate() error {
	if err := d.ValidateContent(); err != nil {
		return err
	}
	return CheckURI("uri", d.URI)
}

// ValidateContent checks every field but the URI
func (d *Descriptor) ValidateContent() error {
	if err := checkText("name", d.Name, 1, MaxNameLength); err != nil {
		return err
	}
	if err := checkText("symbol", d.Symbol, 1, MaxSymbolLength); err != nil {
		return err
	}
	if err := checkText("description", d.Description, 0, MaxDescriptionLength); err != nil {
		return err
	}
	if len(d.Image) != 0 {
		if err := CheckURI("image", d.Image); err != nil {
			return err
		}
	}
	if len(d.Attributes) > MaxAttributes {
		return &FieldError{Field: "attributes", Msg: "too many attributes"}
	}
	for i, a := range d.Attributes {
		if err := checkText("attributes.trait_type", a.TraitType, 1, MaxAttributeLength); err != nil {
			err.Field = attributeField(i, "trait_type")
			return err
		}
		if err := checkText("attributes.value", a.Value, 0, MaxAttributeLength); err != nil {
			err.Field = attributeField(i, "value")
			return err
		}
	}
	return nil
}

// CheckURI validates a URI that is going to be recorded on the ledger
func CheckURI(field, uri string) error {
	if err := checkText(field, uri, 1, MaxURILength); err != nil {
		return err
	}
	u, err := url.Parse(uri)
	if err != nil || !u.IsAbs() || !allowedSchemes[strings.ToLower(u.Scheme)] {
		return &FieldError{Field: field, Msg: "expected an absolute http, https, ipfs or ar uri"}
	}
	return nil
}

func checkText(field, s string, minLen, maxLen int) *FieldError {
	if len(strings.TrimSpace(s)) < minLen {
		return &FieldError{Field: field, Msg: "must not be empty"}
	}
	if len(s) > maxLen {
		return &FieldError{Field: field, Msg: "exceeds the maximum length"}
	}
	if !utf8.ValidString(s) {
		return &FieldError{Field: field, Msg: "not valid utf-8"}
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return &FieldError{Field: field, Msg: "contains control characters"}
		}
	}
	return nil
}

func attributeField(i int, name string) string {
	return "attributes[" + strconv.Itoa(i) + "]." + name
}
