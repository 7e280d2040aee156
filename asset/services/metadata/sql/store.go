/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/nftmint-labs/asset-sdk/asset/services/metadata"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	_ "modernc.org/sqlite"
)

var logger = logging.MustGetLogger("metadata.sql")

// ErrNotFound is returned when no document is stored under the requested hash
var ErrNotFound = errors.New("metadata document not found")

// Supported drivers
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

var sqlDrivers = map[string]string{
	SQLite:   "sqlite",
	Postgres: "pgx",
}

type Config struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	TablePrefix string `mapstructure:"table_prefix"`
	BaseURL     string `mapstructure:"base_url"`
}

// Store keeps metadata documents addressed by the hash of their content
type Store struct {
	db      *sql.DB
	table   string
	baseURL string
}

// Open connects to the configured database and creates the schema if needed
func Open(config Config) (*Store, error) {
	driverName, ok := sqlDrivers[config.Driver]
	if !ok {
		return nil, errors.Errorf("unsupported metadata driver [%s]", config.Driver)
	}
	db, err := sql.Open(driverName, config.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening [%s] database", config.Driver)
	}
	if config.Driver == SQLite {
		// a single writer avoids lock contention on the database file
		db.SetMaxOpenConns(1)
	}
	s, err := NewStore(db, config.TablePrefix, config.BaseURL, true)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewStore(db *sql.DB, tablePrefix, baseURL string, createSchema bool) (*Store, error) {
	table, err := tableName(tablePrefix)
	if err != nil {
		return nil, err
	}
	if err := asset.CheckURI("base_url", baseURL); err != nil {
		return nil, err
	}
	s := &Store{db: db, table: table, baseURL: strings.TrimSuffix(baseURL, "/")}
	if createSchema {
		if err := initSchema(db, s.GetSchema()); err != nil {
			return nil, errors.Wrap(err, "failed to create schema")
		}
	}
	return s, nil
}

func tableName(prefix string) (string, error) {
	if prefix == "" {
		return "asset_metadata", nil
	}
	r := regexp.MustCompile("^[a-zA-Z_]+$")
	if !r.MatchString(prefix) {
		return "", errors.New("illegal character in table prefix, only letters and underscores allowed")
	}
	return strings.ToLower(prefix) + "_asset_metadata", nil
}

// Publish stores the document of d and returns its URI. Publishing the same content twice yields the same URI.
func (s *Store) Publish(ctx context.Context, d asset.Descriptor) (string, error) {
	raw, err := metadata.NewDocument(d).Bytes()
	if err != nil {
		return "", err
	}
	hash := metadata.Hash(raw)
	query := fmt.Sprintf("INSERT INTO %s (hash, document, created_at) VALUES ($1, $2, $3) ON CONFLICT (hash) DO NOTHING", s.table)
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debug(query)
	}
	if _, err := s.db.ExecContext(ctx, query, hash, string(raw), time.Now().UTC()); err != nil {
		return "", errors.Wrapf(err, "failed storing metadata document [%s]", hash)
	}
	uri := s.URI(hash)
	if err := asset.CheckURI("uri", uri); err != nil {
		return "", err
	}
	logger.Infof("published metadata of [%s] at [%s]", logging.Printable(d.Name), uri)
	return uri, nil
}

// URI returns the address the document with the given hash is served at
func (s *Store) URI(hash string) string {
	return s.baseURL + "/" + hash + ".json"
}

// Get returns the document stored under hash
func (s *Store) Get(ctx context.Context, hash string) ([]byte, error) {
	query := fmt.Sprintf("SELECT document FROM %s WHERE hash = $1", s.table)
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debug(query)
	}
	var document string
	if err := s.db.QueryRowContext(ctx, query, hash).Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "[%s]", hash)
		}
		return nil, errors.Wrapf(err, "failed loading metadata document [%s]", hash)
	}
	return []byte(document), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetSchema() string {
	return fmt.Sprintf(`
		-- Metadata documents
		CREATE TABLE IF NOT EXISTS %s (
			hash TEXT NOT NULL PRIMARY KEY,
			document TEXT NOT NULL,
			created_at TIMESTAMP
		);`,
		s.table,
	)
}

func initSchema(db *sql.DB, schemas ...string) (err error) {
	logger.Info("creating tables")
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx != nil {
			if err := tx.Rollback(); err != nil {
				logger.Errorf("failed to rollback [%s][%s]", err, debug.Stack())
			}
		}
	}()
	for _, schema := range schemas {
		logger.Debug(schema)
		if _, err = tx.Exec(schema); err != nil {
			return errors.Wrap(err, "error creating schema")
		}
	}
	return tx.Commit()
}
