package store

//
// storage.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the durable key-value mirror behind the SessionStore.
// It is shared and unsynchronized across processes: the last writer wins.
type Storage interface {
	// Get return the raw value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Delete is a no-op for a missing key.
	Delete(key string) error
}

//-------------------------------------------------------------

type memoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStorage create non-persistent storage; used by tests and --store=memory.
func NewMemoryStorage() Storage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (m *memoryStorage) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[key]

	return value, ok, nil
}

func (m *memoryStorage) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value

	return nil
}

func (m *memoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

//-------------------------------------------------------------

// fileStorage keep all keys in one json file; the closest analogue of the
// original client's localStorage. Reads parse the whole file, writes
// rewrite it. A malformed file counts as empty.
type fileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) Storage {
	return &fileStorage{path: path}
}

func (f *fileStorage) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := f.load()
	value, ok := data[key]

	return value, ok, nil
}

func (f *fileStorage) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := f.load()
	data[key] = value

	return f.save(data)
}

func (f *fileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := f.load()
	if _, ok := data[key]; !ok {
		return nil
	}

	delete(data, key)

	return f.save(data)
}

func (f *fileStorage) load() map[string]json.RawMessage {
	content, err := os.ReadFile(f.path)
	if err != nil {
		return make(map[string]json.RawMessage)
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(content, &data); err != nil || data == nil {
		return make(map[string]json.RawMessage)
	}

	return data
}

func (f *fileStorage) save(data map[string]json.RawMessage) error {
	content, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal state failed: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create state directory failed: %w", err)
		}
	}

	// state holds the bearer token; keep it owner-only
	if err := os.WriteFile(f.path, content, 0o600); err != nil {
		return fmt.Errorf("write state file failed: %w", err)
	}

	return nil
}
