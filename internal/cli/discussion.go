package cli

//
// discussion.go
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
)

const (
	routeDiscussion        = "/discussion"
	routeDiscussionDetail  = "/discussion/detail"
	routeTeacherDiscussion = "/teacher/discussion"
	routeTeacherDisDetail  = "/teacher/discussion/detail"
)

func newDiscussionListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List discussions of the current course",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "course",
				Usage: "Course id (default: current course)",
			},
			&cli.BoolFlag{
				Name:  "deleted",
				Usage: "Include deleted threads (teacher only)",
			},
		},
		Action: wrap(discussionListCmd),
	}
}

//nolint:forbidigo
func discussionListCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	if err := guarded(injector, routeFor(injector, routeDiscussion, routeTeacherDiscussion)); err != nil {
		return err
	}

	courseID, err := courseOrCurrent(clicmd, injector)
	if err != nil {
		return err
	}

	discussions, err := do.MustInvoke[*api.Discussions](injector).
		List(ctx, courseID, clicmd.Bool("deleted"))
	if err != nil {
		return err
	}

	if len(discussions) == 0 {
		fmt.Println("No discussions")

		return nil
	}

	for _, d := range discussions {
		flags := ""

		if d.IsPinned {
			flags += "P"
		}

		if d.IsClosed {
			flags += "C"
		}

		if d.IsDeleted {
			flags += "D"
		}

		fmt.Printf("%5d  %-3s  %s  %s\n", d.ID, flags,
			d.CreatedAt.Local().Format("2006-01-02"), d.Title)
	}

	return nil
}

func newDiscussionShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a discussion with replies",
		ArgsUsage: "<discussion-id>",
		Action:    wrap(discussionShowCmd),
	}
}

//nolint:forbidigo
func discussionShowCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "discussion-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeFor(injector, routeDiscussionDetail, routeTeacherDisDetail)); err != nil {
		return err
	}

	dapi := do.MustInvoke[*api.Discussions](injector)

	discussion, err := dapi.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n", discussion.Title, discussion.Content)

	replies, err := dapi.Replies(ctx, id)
	if err != nil {
		return err
	}

	for _, r := range replies {
		fmt.Printf("\n[%d] %s by %d:\n%s\n", r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.AuthorID, r.Content)
	}

	return nil
}

func newDiscussionCreateCmd() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Start a discussion",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "course",
				Usage: "Course id (default: current course)",
			},
			&cli.StringFlag{
				Name:     "title",
				Required: true,
				Usage:    "Thread title",
				Config:   cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:     "content",
				Required: true,
				Usage:    "Opening post",
			},
		},
		Action: wrap(discussionCreateCmd),
	}
}

//nolint:forbidigo
func discussionCreateCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	if err := guarded(injector, routeFor(injector, routeDiscussion, routeTeacherDiscussion)); err != nil {
		return err
	}

	courseID, err := courseOrCurrent(clicmd, injector)
	if err != nil {
		return err
	}

	discussion, err := do.MustInvoke[*api.Discussions](injector).
		Create(ctx, courseID, clicmd.String("title"), clicmd.String("content"))
	if err != nil {
		return err
	}

	fmt.Printf("Discussion %d created\n", discussion.ID)

	return nil
}

func newDiscussionReplyCmd() *cli.Command {
	return &cli.Command{
		Name:      "reply",
		Usage:     "Reply to a discussion",
		ArgsUsage: "<discussion-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "content",
				Required: true,
				Usage:    "Reply text",
			},
		},
		Action: wrap(discussionReplyCmd),
	}
}

//nolint:forbidigo
func discussionReplyCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "discussion-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeFor(injector, routeDiscussionDetail, routeTeacherDisDetail)); err != nil {
		return err
	}

	reply, err := do.MustInvoke[*api.Discussions](injector).
		Reply(ctx, id, clicmd.String("content"))
	if err != nil {
		return err
	}

	fmt.Printf("Reply %d posted\n", reply.ID)

	return nil
}

func newDiscussionPinCmd() *cli.Command {
	return &cli.Command{
		Name:      "pin",
		Usage:     "Pin or unpin a discussion",
		ArgsUsage: "<discussion-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "off",
				Usage: "Unpin instead",
			},
		},
		Action: wrap(discussionPinCmd),
	}
}

//nolint:forbidigo
func discussionPinCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "discussion-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeTeacherDisDetail); err != nil {
		return err
	}

	dapi := do.MustInvoke[*api.Discussions](injector)

	if clicmd.Bool("off") {
		if err := dapi.Unpin(ctx, id); err != nil {
			return err
		}

		fmt.Printf("Discussion %d unpinned\n", id)

		return nil
	}

	if err := dapi.Pin(ctx, id); err != nil {
		return err
	}

	fmt.Printf("Discussion %d pinned\n", id)

	return nil
}

func newDiscussionCloseCmd() *cli.Command {
	return &cli.Command{
		Name:      "close",
		Usage:     "Close a discussion",
		ArgsUsage: "<discussion-id>",
		Action:    wrap(discussionCloseCmd),
	}
}

//nolint:forbidigo
func discussionCloseCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "discussion-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeTeacherDisDetail); err != nil {
		return err
	}

	if err := do.MustInvoke[*api.Discussions](injector).Close(ctx, id); err != nil {
		return err
	}

	fmt.Printf("Discussion %d closed\n", id)

	return nil
}
