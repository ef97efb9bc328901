package cli

//
// file.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"

	"gitlab.com/kabes/go-spm/internal/aerr"
	"gitlab.com/kabes/go-spm/internal/api"
	"gitlab.com/kabes/go-spm/internal/store"
)

func newFileUploadCmd() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload a local file",
		ArgsUsage: "<path>",
		Action:    wrap(fileUploadCmd),
	}
}

//nolint:forbidigo
func fileUploadCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	path := clicmd.Args().First()
	if path == "" {
		return aerr.New("missing file path").WithTag(aerr.ValidationError).
			WithUserMsg("give the file path as argument")
	}

	if err := guarded(injector, routeFor(injector, routeHomeworkDetail, routeTeacherHwDetail)); err != nil {
		return err
	}

	sess := do.MustInvoke[*store.SessionStore](injector).Hydrate()
	if sess == nil {
		return aerr.New("no active session").WithTag(aerr.AuthError).
			WithUserMsg("please login first (spm login)")
	}

	stored, err := do.MustInvoke[*api.Files](injector).Upload(ctx, path, sess.Identity.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %s as file %d (%d bytes)\n", stored.Name, stored.ID, stored.Size)

	return nil
}

func newFileDownloadCmd() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "Download a file by id",
		ArgsUsage: "<file-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Destination path (default: file id in the working dir)",
				Config:  cli.StringConfig{TrimSpace: true},
			},
		},
		Action: wrap(fileDownloadCmd),
	}
}

//nolint:forbidigo
func fileDownloadCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "file-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeFor(injector, routeHomeworkDetail, routeTeacherHwDetail)); err != nil {
		return err
	}

	dest := clicmd.String("output")
	if dest == "" {
		dest = filepath.Join(".", fmt.Sprintf("file-%d", id))
	}

	if err := do.MustInvoke[*api.Files](injector).Download(ctx, id, dest); err != nil {
		return err
	}

	fmt.Printf("Saved file %d to %s\n", id, dest)

	return nil
}
