package api

// files.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/transport"
)

type Files struct {
	d *transport.Dispatcher
}

func NewFilesI(i do.Injector) (*Files, error) {
	return &Files{do.MustInvoke[*transport.Dispatcher](i)}, nil
}

// Upload send a local file as multipart form data.
func (f *Files) Upload(ctx context.Context, path string, uploaderID int64) (*model.StoredFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q error: %w", path, err)
	}

	defer file.Close()

	fields := map[string]string{
		"uploaderId": strconv.FormatInt(uploaderID, 10),
	}

	var stored model.StoredFile
	if err := f.d.PostMultipart(ctx, "/files", "file", filepath.Base(path), file, fields, &stored); err != nil {
		return nil, err
	}

	return &stored, nil
}

// Download fetch a file by id into dest.
func (f *Files) Download(ctx context.Context, id int64, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %q error: %w", dest, err)
	}

	defer out.Close()

	if err := f.d.Download(ctx, fmt.Sprintf("/files/%d", id), out); err != nil {
		return err
	}

	if err := out.Sync(); err != nil {
		return fmt.Errorf("flush %q error: %w", dest, err)
	}

	return nil
}
