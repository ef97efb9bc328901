package cli

//
// attendance.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"

	"gitlab.com/kabes/go-spm/internal/aerr"
	"gitlab.com/kabes/go-spm/internal/api"
	"gitlab.com/kabes/go-spm/internal/model"
)

const (
	routeAttendance        = "/attendance"
	routeTeacherAttendance = "/teacher/attendance"
	routeTeacherAttDetail  = "/teacher/attendance/detail"
)

func newAttendanceListCmd() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List attendance (own records for students, sessions for teachers)",
		Action: wrap(attendanceListCmd),
	}
}

//nolint:forbidigo
func attendanceListCmd(ctx context.Context, _ *cli.Command, injector do.Injector) error {
	target := routeFor(injector, routeAttendance, routeTeacherAttendance)
	if err := guarded(injector, target); err != nil {
		return err
	}

	aapi := do.MustInvoke[*api.Attendance](injector)

	if target == routeTeacherAttendance {
		sessions, err := aapi.Sessions(ctx)
		if err != nil {
			return err
		}

		for _, s := range sessions {
			state := "open"
			if s.Ended {
				state = "ended"
			}

			fmt.Printf("%5d  %-6s  %s  %s\n", s.ID, state,
				s.StartsAt.Local().Format("2006-01-02 15:04"), s.Title)
		}

		return nil
	}

	records, err := aapi.My(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No attendance records")

		return nil
	}

	for _, r := range records {
		fmt.Printf("%5d  %-10s  %s\n", r.SessionID, r.Status,
			r.CheckedInAt.Local().Format("2006-01-02 15:04"))
	}

	return nil
}

func newAttendanceCheckinCmd() *cli.Command {
	return &cli.Command{
		Name:      "checkin",
		Usage:     "Check in with a session code",
		ArgsUsage: "<code>",
		Action:    wrap(attendanceCheckinCmd),
	}
}

//nolint:forbidigo
func attendanceCheckinCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	code := clicmd.Args().First()
	if code == "" {
		return aerr.New("missing checkin code").WithTag(aerr.ValidationError).
			WithUserMsg("give the checkin code as argument")
	}

	if err := guarded(injector, routeAttendance); err != nil {
		return err
	}

	record, err := do.MustInvoke[*api.Attendance](injector).Checkin(ctx, code)
	if err != nil {
		return err
	}

	fmt.Printf("Checked in to session %d (%s)\n", record.SessionID, record.Status)

	return nil
}

func newAttendanceCreateCmd() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Open a new checkin window",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "course",
				Usage: "Course id (default: current course)",
			},
			&cli.StringFlag{
				Name:     "title",
				Required: true,
				Usage:    "Session title",
				Config:   cli.StringConfig{TrimSpace: true},
			},
			&cli.DurationFlag{
				Name:  "duration",
				Value: 10 * time.Minute,
				Usage: "How long the window stays open",
			},
		},
		Action: wrap(attendanceCreateCmd),
	}
}

//nolint:forbidigo
func attendanceCreateCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	if err := guarded(injector, routeTeacherAttendance); err != nil {
		return err
	}

	courseID, err := courseOrCurrent(clicmd, injector)
	if err != nil {
		return err
	}

	now := time.Now()
	session := &model.AttendanceSession{
		CourseID: courseID,
		Title:    clicmd.String("title"),
		StartsAt: now,
		EndsAt:   now.Add(clicmd.Duration("duration")),
	}

	created, err := do.MustInvoke[*api.Attendance](injector).CreateSession(ctx, session)
	if err != nil {
		return err
	}

	fmt.Printf("Session %d open until %s, code: %s\n", created.ID,
		created.EndsAt.Local().Format("15:04"), created.Code)

	return nil
}

func newAttendanceEndCmd() *cli.Command {
	return &cli.Command{
		Name:      "end",
		Usage:     "Close a checkin window",
		ArgsUsage: "<session-id>",
		Action:    wrap(attendanceEndCmd),
	}
}

//nolint:forbidigo
func attendanceEndCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "session-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeTeacherAttendance); err != nil {
		return err
	}

	if err := do.MustInvoke[*api.Attendance](injector).EndSession(ctx, id); err != nil {
		return err
	}

	fmt.Printf("Session %d ended\n", id)

	return nil
}

func newAttendanceRecordsCmd() *cli.Command {
	return &cli.Command{
		Name:      "records",
		Usage:     "Show checkins of a session",
		ArgsUsage: "<session-id>",
		Action:    wrap(attendanceRecordsCmd),
	}
}

//nolint:forbidigo
func attendanceRecordsCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "session-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeTeacherAttDetail); err != nil {
		return err
	}

	aapi := do.MustInvoke[*api.Attendance](injector)

	records, err := aapi.Records(ctx, id)
	if err != nil {
		return err
	}

	for _, r := range records {
		fmt.Printf("%5d  %-10s  %s\n", r.StudentID, r.Status,
			r.CheckedInAt.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := aapi.Stats(ctx, id); err == nil {
		fmt.Printf("\n%d of %d checked in, %d absent\n",
			stats.CheckedIn, stats.Expected, stats.Absent)
	}

	return nil
}
