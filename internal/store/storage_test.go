package store

//
// storage_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/kabes/go-spm/internal/assert"
)

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.json")
	fstore := NewFileStorage(path)

	_, ok, err := fstore.Get("session")
	assert.NoErr(t, err)
	assert.True(t, !ok)

	assert.NoErr(t, fstore.Set("session", []byte(`{"a":1}`)))
	assert.NoErr(t, fstore.Set("courses", []byte(`[1,2]`)))

	value, ok, err := fstore.Get("session")
	assert.NoErr(t, err)
	assert.True(t, ok)
	assert.Equal(t, value, []byte(`{"a":1}`))

	// a second instance over the same file sees the same state
	value, ok, err = NewFileStorage(path).Get("courses")
	assert.NoErr(t, err)
	assert.True(t, ok)
	assert.Equal(t, value, []byte(`[1,2]`))

	assert.NoErr(t, fstore.Delete("session"))
	assert.NoErr(t, fstore.Delete("session"))

	_, ok, err = fstore.Get("session")
	assert.NoErr(t, err)
	assert.True(t, !ok)
}

func TestFileStorageMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	assert.NoErr(t, os.WriteFile(path, []byte("{garbage"), 0o600))

	fstore := NewFileStorage(path)

	_, ok, err := fstore.Get("session")
	assert.NoErr(t, err)
	assert.True(t, !ok)

	// writing through a broken file resets it
	assert.NoErr(t, fstore.Set("session", []byte(`1`)))

	value, ok, err := fstore.Get("session")
	assert.NoErr(t, err)
	assert.True(t, ok)
	assert.Equal(t, value, []byte(`1`))
}
