package cli

//
// main.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//
import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"gitlab.com/kabes/go-spm/internal/aerr"
	"gitlab.com/kabes/go-spm/internal/config"
)

//nolint:forbidigo
func Main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "print-version",
		Aliases: []string{"V"},
		Usage:   "Print version.",
	}

	config.LoadDotEnv()

	app := &cli.Command{
		Name:    "spm",
		Usage:   "command-line client for the SPM course service",
		Version: config.VersionString,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Value:   "http://localhost:8080/api",
				Usage:   "Backend base url",
				Aliases: []string{"b"},
				Sources: cli.EnvVars("SPM_BASE_URL"),
				Config:  cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:    "state",
				Usage:   "State file path (default under the user config dir)",
				Sources: cli.EnvVars("SPM_STATE"),
				Config:  cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:    "store",
				Value:   "file",
				Usage:   "State store backend (file, db, memory)",
				Sources: cli.EnvVars("SPM_STORE"),
				Config:  cli.StringConfig{TrimSpace: true},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Request timeout",
				Sources: cli.EnvVars("SPM_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "log.level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("SPM_LOGLEVEL"),
				Config:  cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:    "log.format",
				Value:   "console",
				Usage:   "Log format (console, json)",
				Sources: cli.EnvVars("SPM_LOGFORMAT"),
				Config:  cli.StringConfig{TrimSpace: true},
			},
		},
		Commands: []*cli.Command{
			newLoginCmd(),
			newRegisterCmd(),
			newLogoutCmd(),
			newWhoamiCmd(),
			courseSubCmd(),
			announcementSubCmd(),
			homeworkSubCmd(),
			attendanceSubCmd(),
			discussionSubCmd(),
			fileSubCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if h := aerr.GetUserMessage(err); h != "" {
			fmt.Printf("Error: %s\n", h)
		} else {
			fmt.Printf("Error: %s\n", err.Error())
		}

		os.Exit(1)
	}
}

func courseSubCmd() *cli.Command {
	return &cli.Command{
		Name:  "course",
		Usage: "manage courses",
		Commands: []*cli.Command{
			newCourseListCmd(),
			newCourseJoinCmd(),
			newCourseSelectCmd(),
			newCourseInviteCmd(),
		},
	}
}

func announcementSubCmd() *cli.Command {
	return &cli.Command{
		Name:    "announcement",
		Usage:   "course announcements",
		Aliases: []string{"ann"},
		Commands: []*cli.Command{
			newAnnouncementListCmd(),
			newAnnouncementCreateCmd(),
			newAnnouncementDeleteCmd(),
		},
	}
}

func homeworkSubCmd() *cli.Command {
	return &cli.Command{
		Name:  "homework",
		Usage: "assignments, submissions and grades",
		Commands: []*cli.Command{
			newHomeworkListCmd(),
			newHomeworkShowCmd(),
			newHomeworkSubmitCmd(),
			newHomeworkGradeCmd(),
			newHomeworkGradesCmd(),
		},
	}
}

func attendanceSubCmd() *cli.Command {
	return &cli.Command{
		Name:  "attendance",
		Usage: "attendance sessions and checkins",
		Commands: []*cli.Command{
			newAttendanceListCmd(),
			newAttendanceCheckinCmd(),
			newAttendanceCreateCmd(),
			newAttendanceEndCmd(),
			newAttendanceRecordsCmd(),
		},
	}
}

func discussionSubCmd() *cli.Command {
	return &cli.Command{
		Name:  "discussion",
		Usage: "course discussions",
		Commands: []*cli.Command{
			newDiscussionListCmd(),
			newDiscussionShowCmd(),
			newDiscussionCreateCmd(),
			newDiscussionReplyCmd(),
			newDiscussionPinCmd(),
			newDiscussionCloseCmd(),
		},
	}
}

func fileSubCmd() *cli.Command {
	return &cli.Command{
		Name:  "file",
		Usage: "file transfer",
		Commands: []*cli.Command{
			newFileUploadCmd(),
			newFileDownloadCmd(),
		},
	}
}
