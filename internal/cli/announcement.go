package cli

//
// announcement.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"

	"gitlab.com/kabes/go-spm/internal/api"
	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/router"
)

func newAnnouncementListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List announcements of the current course",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "course",
				Usage: "Course id (default: current course)",
			},
			&cli.BoolFlag{
				Name:  "global",
				Value: true,
				Usage: "Include school-wide announcements",
			},
		},
		Action: wrap(announcementListCmd),
	}
}

//nolint:forbidigo
func announcementListCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	if err := guarded(injector, routeFor(injector, router.StudentHome, router.TeacherHome)); err != nil {
		return err
	}

	courseID, err := courseOrCurrent(clicmd, injector)
	if err != nil {
		return err
	}

	announcements, err := do.MustInvoke[*api.Announcements](injector).
		List(ctx, courseID, clicmd.Bool("global"))
	if err != nil {
		return err
	}

	if len(announcements) == 0 {
		fmt.Println("No announcements")

		return nil
	}

	for _, ann := range announcements {
		pin := " "
		if ann.IsPinned {
			pin = "P"
		}

		fmt.Printf("%s %5d  %s  %s\n", pin, ann.ID,
			ann.CreatedAt.Local().Format("2006-01-02"), ann.Title)
	}

	return nil
}

func newAnnouncementCreateCmd() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Publish an announcement",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "course",
				Usage: "Course id (default: current course)",
			},
			&cli.StringFlag{
				Name:     "title",
				Required: true,
				Usage:    "Announcement title",
				Config:   cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:     "content",
				Required: true,
				Usage:    "Announcement body",
			},
			&cli.BoolFlag{
				Name:  "pin",
				Usage: "Pin on top of the list",
			},
		},
		Action: wrap(announcementCreateCmd),
	}
}

//nolint:forbidigo
func announcementCreateCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	if err := guarded(injector, router.TeacherHome); err != nil {
		return err
	}

	courseID, err := courseOrCurrent(clicmd, injector)
	if err != nil {
		return err
	}

	ann := &model.NewAnnouncement{
		CourseID: courseID,
		Title:    clicmd.String("title"),
		Content:  clicmd.String("content"),
		IsPinned: clicmd.Bool("pin"),
	}

	created, err := do.MustInvoke[*api.Announcements](injector).Create(ctx, ann)
	if err != nil {
		return err
	}

	fmt.Printf("Announcement %d published\n", created.ID)

	return nil
}

func newAnnouncementDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an announcement",
		ArgsUsage: "<announcement-id>",
		Action:    wrap(announcementDeleteCmd),
	}
}

//nolint:forbidigo
func announcementDeleteCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "announcement-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, router.TeacherHome); err != nil {
		return err
	}

	if err := do.MustInvoke[*api.Announcements](injector).Delete(ctx, id); err != nil {
		return err
	}

	fmt.Printf("Announcement %d deleted\n", id)

	return nil
}
