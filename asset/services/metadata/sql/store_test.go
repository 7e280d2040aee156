/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sql

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/metadata"
	"github.com/onsi/gomega"
)

var colosseum = asset.Descriptor{
	Name:        "Ancient Colosseum",
	Symbol:      "COLO",
	Description: "A landmark of Rome",
	Attributes:  []asset.Attribute{{TraitType: "city", Value: "Rome"}},
}

func TestPublish(t *testing.T) {
	gomega.RegisterTestingT(t)
	db, mockDB, err := sqlmock.New()
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	raw, err := metadata.NewDocument(colosseum).Bytes()
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	hash := metadata.Hash(raw)

	mockDB.ExpectExec("INSERT INTO asset_metadata \\(hash, document, created_at\\) VALUES \\(\\$1, \\$2, \\$3\\) ON CONFLICT \\(hash\\) DO NOTHING").
		WithArgs(hash, string(raw), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store, err := NewStore(db, "", "https://meta.example.com/", false)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	uri, err := store.Publish(context.Background(), colosseum)

	gomega.Expect(mockDB.ExpectationsWereMet()).To(gomega.Succeed())
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	gomega.Expect(uri).To(gomega.Equal("https://meta.example.com/" + hash + ".json"))
}

func TestGet(t *testing.T) {
	gomega.RegisterTestingT(t)
	db, mockDB, err := sqlmock.New()
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	mockDB.ExpectQuery("SELECT document FROM test_asset_metadata WHERE hash = \\$1").
		WithArgs("abc").
		WillReturnRows(mockDB.NewRows([]string{"document"}).AddRow(`{"name":"x"}`))
	mockDB.ExpectQuery("SELECT document FROM test_asset_metadata WHERE hash = \\$1").
		WithArgs("def").
		WillReturnRows(mockDB.NewRows([]string{"document"}))

	store, err := NewStore(db, "test", "https://meta.example.com", false)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	doc, err := store.Get(context.Background(), "abc")
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	gomega.Expect(string(doc)).To(gomega.Equal(`{"name":"x"}`))

	_, err = store.Get(context.Background(), "def")
	gomega.Expect(err).To(gomega.MatchError(ErrNotFound))
	gomega.Expect(mockDB.ExpectationsWereMet()).To(gomega.Succeed())
}

func TestNewStoreValidation(t *testing.T) {
	gomega.RegisterTestingT(t)
	db, _, err := sqlmock.New()
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	_, err = NewStore(db, "in;valid", "https://meta.example.com", false)
	gomega.Expect(err).To(gomega.HaveOccurred())
	_, err = NewStore(db, "", "not a url", false)
	gomega.Expect(err).To(gomega.MatchError(asset.ErrValidation))
	_, err = Open(Config{Driver: "oracle"})
	gomega.Expect(err).To(gomega.HaveOccurred())
}

func TestSQLiteStore(t *testing.T) {
	gomega.RegisterTestingT(t)
	store, err := Open(Config{
		Driver:  SQLite,
		DSN:     filepath.Join(t.TempDir(), "metadata.db"),
		BaseURL: "https://meta.example.com",
	})
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	defer func() { gomega.Expect(store.Close()).To(gomega.Succeed()) }()

	uri1, err := store.Publish(context.Background(), colosseum)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	uri2, err := store.Publish(context.Background(), colosseum)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	gomega.Expect(uri2).To(gomega.Equal(uri1))

	other := colosseum
	other.Name = "Pantheon"
	uri3, err := store.Publish(context.Background(), other)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	gomega.Expect(uri3).ToNot(gomega.Equal(uri1))

	raw, err := metadata.NewDocument(colosseum).Bytes()
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	doc, err := store.Get(context.Background(), metadata.Hash(raw))
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	gomega.Expect(doc).To(gomega.MatchJSON(raw))
}
