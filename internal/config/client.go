package config

//
// client.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"gitlab.com/kabes/go-spm/internal/aerr"
)

// ClientConf configure the backend endpoint and the local state mirror.
type ClientConf struct {
	BaseURL   string
	Timeout   time.Duration
	StatePath string
	Store     string // file, db or memory
}

func (c *ClientConf) Validate() error {
	if c.BaseURL == "" {
		return aerr.ErrValidation.WithUserMsg("base url can't be empty")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return aerr.ErrValidation.WithUserMsg("invalid base url: %q", c.BaseURL)
	}

	switch c.Store {
	case "":
		c.Store = "file"
	case "file", "db", "memory":
		// ok
	default:
		return aerr.ErrValidation.WithUserMsg("invalid store parameter: %q", c.Store)
	}

	if c.StatePath == "" && c.Store != "memory" {
		c.StatePath = DefaultStatePath(c.Store)
	}

	return nil
}

// DefaultStatePath place client state under the user config directory.
func DefaultStatePath(storeBackend string) string {
	name := "state.json"
	if storeBackend == "db" {
		name = "state.sqlite"
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}

	return filepath.Join(dir, "spm", name)
}

// LoadDotEnv pull SPM_* defaults from a .env file when one exists next to
// the working directory; flags and real environment take precedence.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Logger.Warn().Err(err).Msg("load .env failed")
	}
}
