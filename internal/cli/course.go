package cli

//
// course.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"

	"gitlab.com/kabes/go-spm/internal/aerr"
	"gitlab.com/kabes/go-spm/internal/api"
	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/router"
	"gitlab.com/kabes/go-spm/internal/store"
)

func newCourseListCmd() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List accessible courses",
		Action: wrap(courseListCmd),
	}
}

//nolint:forbidigo
func courseListCmd(ctx context.Context, _ *cli.Command, injector do.Injector) error {
	if err := guarded(injector, router.CourseJoin); err != nil {
		return err
	}

	courses, err := do.MustInvoke[*api.Courses](injector).My(ctx)
	if err != nil {
		return err
	}

	if len(courses) == 0 {
		fmt.Println("No courses; join one with `spm course join`")

		return nil
	}

	currentID := int64(0)
	if cctx := do.MustInvoke[*store.SessionStore](injector).CourseContext(); cctx != nil {
		currentID = cctx.CurrentID
	}

	for _, course := range courses {
		marker := " "
		if course.ID == currentID {
			marker = "*"
		}

		fmt.Printf("%s %5d  %-30s %s\n", marker, course.ID, course.Name, course.Term)
	}

	return nil
}

func newCourseJoinCmd() *cli.Command {
	return &cli.Command{
		Name:      "join",
		Usage:     "Join a course by invite code",
		ArgsUsage: "<invite-code>",
		Action:    wrap(courseJoinCmd),
	}
}

//nolint:forbidigo
func courseJoinCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	code := clicmd.Args().First()
	if code == "" {
		return aerr.New("missing invite code").WithTag(aerr.ValidationError).
			WithUserMsg("give the invite code as argument")
	}

	if err := guarded(injector, router.CourseJoin); err != nil {
		return err
	}

	capi := do.MustInvoke[*api.Courses](injector)

	course, err := capi.Join(ctx, code)
	if err != nil {
		return err
	}

	fmt.Printf("Joined %s (%d)\n", course.Name, course.ID)

	return refreshCourseContext(ctx, injector, course.ID)
}

func newCourseSelectCmd() *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Select the current course",
		ArgsUsage: "<course-id>",
		Action:    wrap(courseSelectCmd),
	}
}

//nolint:forbidigo
func courseSelectCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "course-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, router.CourseJoin); err != nil {
		return err
	}

	if err := refreshCourseContext(ctx, injector, id); err != nil {
		return err
	}

	fmt.Printf("Current course set to %d\n", id)

	return nil
}

func newCourseInviteCmd() *cli.Command {
	return &cli.Command{
		Name:  "invite",
		Usage: "Issue an invite code for a course",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "course",
				Usage: "Course id (default: current course)",
			},
			&cli.IntFlag{
				Name:  "max-uses",
				Value: 1,
				Usage: "How many students may use the code",
			},
		},
		Action: wrap(courseInviteCmd),
	}
}

//nolint:forbidigo
func courseInviteCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	if err := guarded(injector, router.TeacherHome); err != nil {
		return err
	}

	courseID, err := courseOrCurrent(clicmd, injector)
	if err != nil {
		return err
	}

	invite, err := do.MustInvoke[*api.Courses](injector).
		CreateInvite(ctx, courseID, clicmd.Int("max-uses"))
	if err != nil {
		return err
	}

	fmt.Printf("Invite code %s for course %d, valid until %s\n",
		invite.Code, invite.CourseID, invite.ExpiresAt.Local().Format("2006-01-02 15:04"))

	return nil
}

//-------------------------------------------------------------

// refreshCourseContext reload the course list and store currentID as the
// selection; currentID 0 keeps the first course.
func refreshCourseContext(ctx context.Context, injector do.Injector, currentID int64) error {
	courses, err := do.MustInvoke[*api.Courses](injector).My(ctx)
	if err != nil {
		return err
	}

	cctx := &model.CourseContext{Courses: courses, CurrentID: currentID}

	if currentID != 0 {
		if _, ok := cctx.Current(); !ok {
			return aerr.Newf("course %d not accessible", currentID).
				WithTag(aerr.ValidationError).
				WithUserMsg("you have no access to course %d", currentID)
		}
	} else if len(courses) > 0 {
		cctx.CurrentID = courses[0].ID
	}

	return do.MustInvoke[*store.SessionStore](injector).SetCourseContext(cctx)
}

// courseOrCurrent resolve the course flag, falling back to the selected
// course.
func courseOrCurrent(clicmd *cli.Command, injector do.Injector) (int64, error) {
	if id := clicmd.Int64("course"); id != 0 {
		return id, nil
	}

	cctx := do.MustInvoke[*store.SessionStore](injector).CourseContext()
	if current, ok := cctx.Current(); cctx.Selected() && ok {
		return current.ID, nil
	}

	return 0, aerr.New("no course selected").WithTag(aerr.ValidationError).
		WithUserMsg("no course selected; give --course or `spm course select`")
}

func parseIDArg(clicmd *cli.Command, name string) (int64, error) {
	arg := clicmd.Args().First()
	if arg == "" {
		return 0, aerr.Newf("missing %s", name).WithTag(aerr.ValidationError).
			WithUserMsg("give the %s as argument", name)
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, aerr.Newf("invalid %s %q", name, arg).WithTag(aerr.ValidationError).
			WithUserMsg("%s must be a positive number", name)
	}

	return id, nil
}
