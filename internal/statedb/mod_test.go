package statedb

//
// mod_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"gitlab.com/kabes/go-spm/internal/assert"
)

func newTestDB(t *testing.T) *StateDB {
	t.Helper()

	sdb := New()

	ctx := context.Background()
	assert.NoErr(t, sdb.Connect(ctx, filepath.Join(t.TempDir(), "state.sqlite")))
	t.Cleanup(func() { _ = sdb.Shutdown(ctx) })

	return sdb
}

func TestStateRoundTrip(t *testing.T) {
	sdb := newTestDB(t)

	_, ok, err := sdb.Get("missing")
	assert.NoErr(t, err)
	assert.True(t, !ok)

	assert.NoErr(t, sdb.Set("session", []byte(`{"a":1}`)))

	value, ok, err := sdb.Get("session")
	assert.NoErr(t, err)
	assert.True(t, ok)
	assert.Equal(t, value, []byte(`{"a":1}`))

	// upsert replaces
	assert.NoErr(t, sdb.Set("session", []byte(`{"a":2}`)))

	value, _, err = sdb.Get("session")
	assert.NoErr(t, err)
	assert.Equal(t, value, []byte(`{"a":2}`))
}

func TestStateDelete(t *testing.T) {
	sdb := newTestDB(t)

	assert.NoErr(t, sdb.Set("courses", []byte(`[]`)))
	assert.NoErr(t, sdb.Delete("courses"))
	assert.NoErr(t, sdb.Delete("courses"))

	_, ok, err := sdb.Get("courses")
	assert.NoErr(t, err)
	assert.True(t, !ok)
}
