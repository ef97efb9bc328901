// Package statedb provide the sqlite-backed durable storage for client state.
package statedb

//
// mod.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"gitlab.com/kabes/go-spm/internal/aerr"
)

//go:embed "migrations/*.sql"
var embedMigrations embed.FS

type StateDB struct {
	db *sqlx.DB
}

func New() *StateDB {
	return &StateDB{}
}

func (s *StateDB) Connect(ctx context.Context, connstr string) error {
	logger := log.Ctx(ctx)
	logger.Debug().Msgf("opening state database %q", connstr)

	db, err := sqlx.Open("sqlite3", connstr+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return aerr.Wrapf(err, "open state database failed").WithTag(aerr.InternalError).
			WithMeta("connstr", connstr)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(30 * time.Second) //nolint:mnd

	if err := db.PingContext(ctx); err != nil {
		return aerr.Wrapf(err, "ping state database failed").WithTag(aerr.InternalError)
	}

	s.db = db

	return s.migrate(ctx)
}

// Shutdown close database. Called by samber/do.
func (s *StateDB) Shutdown(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close state database error: %w", err)
	}

	log.Ctx(ctx).Debug().Msg("state database closed")

	return nil
}

func (s *StateDB) migrate(ctx context.Context) error {
	migdir, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		panic(fmt.Errorf("prepare migration fs failed: %w", err))
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db.DB, migdir)
	if err != nil {
		panic(fmt.Errorf("create goose provider failed: %w", err))
	}

	for {
		res, err := provider.UpByOne(ctx)
		if res != nil {
			log.Ctx(ctx).Debug().Msgf("migration: %s", res)
		}

		if errors.Is(err, goose.ErrNoNextVersion) {
			break
		} else if err != nil {
			return aerr.ApplyFor(aerr.ErrStorage, err, "migrate state database failed")
		}
	}

	return nil
}

//-------------------------------------------------------------

// Get implement store.Storage.
func (s *StateDB) Get(key string) ([]byte, bool, error) {
	var value []byte

	err := s.db.Get(&value, "SELECT value FROM state WHERE key=?", key) //nolint:noctx
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("get state %q error: %w", key, err)
	}

	return value, true, nil
}

// Set implement store.Storage.
func (s *StateDB) Set(key string, value []byte) error {
	_, err := s.db.Exec( //nolint:noctx
		"INSERT INTO state(key, value, updated_at) VALUES(?, ?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put state %q error: %w", key, err)
	}

	return nil
}

// Delete implement store.Storage.
func (s *StateDB) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM state WHERE key=?", key); err != nil { //nolint:noctx
		return fmt.Errorf("delete state %q error: %w", key, err)
	}

	return nil
}
