package cli

//
// homework.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"

	"gitlab.com/kabes/go-spm/internal/aerr"
	"gitlab.com/kabes/go-spm/internal/api"
	"gitlab.com/kabes/go-spm/internal/model"
)

const (
	routeHomework        = "/homework"
	routeHomeworkDetail  = "/homework/detail"
	routeTeacherHomework = "/teacher/homework"
	routeTeacherHwDetail = "/teacher/homework/detail"
)

func newHomeworkListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List assignments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:   "status",
				Usage:  "Filter: all, progress, submitted, graded",
				Config: cli.StringConfig{TrimSpace: true},
			},
		},
		Action: wrap(homeworkListCmd),
	}
}

//nolint:forbidigo
func homeworkListCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	if err := guarded(injector, routeFor(injector, routeHomework, routeTeacherHomework)); err != nil {
		return err
	}

	assignments, err := do.MustInvoke[*api.Assignments](injector).
		List(ctx, clicmd.String("status"))
	if err != nil {
		return err
	}

	if len(assignments) == 0 {
		fmt.Println("No assignments")

		return nil
	}

	for _, a := range assignments {
		fmt.Printf("%5d  %-10s  due %s  %s\n", a.ID, a.Status,
			a.DueAt.Local().Format("2006-01-02 15:04"), a.Title)
	}

	return nil
}

func newHomeworkShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one assignment",
		ArgsUsage: "<assignment-id>",
		Action:    wrap(homeworkShowCmd),
	}
}

//nolint:forbidigo
func homeworkShowCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "assignment-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeFor(injector, routeHomeworkDetail, routeTeacherHwDetail)); err != nil {
		return err
	}

	aapi := do.MustInvoke[*api.Assignments](injector)

	assignment, err := aapi.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Assignment %d: %s\n", assignment.ID, assignment.Title)
	fmt.Printf("Status: %s, due %s\n", assignment.Status,
		assignment.DueAt.Local().Format("2006-01-02 15:04"))
	fmt.Println(assignment.Description)

	if submission, err := aapi.MySubmission(ctx, id); err == nil {
		fmt.Printf("\nSubmitted at %s:\n%s\n",
			submission.SubmittedAt.Local().Format("2006-01-02 15:04"), submission.Content)
	}

	return nil
}

func newHomeworkSubmitCmd() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "Submit an assignment solution",
		ArgsUsage: "<assignment-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "content",
				Required: true,
				Usage:    "Solution text",
			},
		},
		Action: wrap(homeworkSubmitCmd),
	}
}

//nolint:forbidigo
func homeworkSubmitCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "assignment-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeHomeworkDetail); err != nil {
		return err
	}

	submission, err := do.MustInvoke[*api.Assignments](injector).
		Submit(ctx, id, clicmd.String("content"))
	if err != nil {
		return err
	}

	fmt.Printf("Submission %d accepted\n", submission.ID)

	return nil
}

func newHomeworkGradeCmd() *cli.Command {
	return &cli.Command{
		Name:      "grade",
		Usage:     "Grade a submission",
		ArgsUsage: "<assignment-id>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "submission",
				Required: true,
				Usage:    "Submission id",
			},
			&cli.Float64Flag{
				Name:     "score",
				Required: true,
				Usage:    "Score",
			},
			&cli.StringFlag{
				Name:  "feedback",
				Usage: "Feedback for the student",
			},
			&cli.BoolFlag{
				Name:  "release",
				Usage: "Make the grade visible to the student",
			},
		},
		Action: wrap(homeworkGradeCmd),
	}
}

//nolint:forbidigo
func homeworkGradeCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	id, err := parseIDArg(clicmd, "assignment-id")
	if err != nil {
		return err
	}

	if err := guarded(injector, routeTeacherHwDetail); err != nil {
		return err
	}

	score := clicmd.Float64("score")
	if score < 0 {
		return aerr.Newf("invalid score %v", score).WithTag(aerr.ValidationError).
			WithUserMsg("score must not be negative")
	}

	grade := &model.Grade{
		SubmissionID: clicmd.Int64("submission"),
		Score:        score,
		Feedback:     clicmd.String("feedback"),
		Released:     clicmd.Bool("release"),
	}

	if err := do.MustInvoke[*api.Assignments](injector).
		Grade(ctx, id, grade.SubmissionID, grade); err != nil {
		return err
	}

	fmt.Printf("Submission %d graded\n", grade.SubmissionID)

	return nil
}

func newHomeworkGradesCmd() *cli.Command {
	return &cli.Command{
		Name:   "grades",
		Usage:  "Show my released grades",
		Action: wrap(homeworkGradesCmd),
	}
}

//nolint:forbidigo
func homeworkGradesCmd(ctx context.Context, _ *cli.Command, injector do.Injector) error {
	if err := guarded(injector, routeHomework); err != nil {
		return err
	}

	grades, err := do.MustInvoke[*api.Assignments](injector).MyGrades(ctx)
	if err != nil {
		return err
	}

	if len(grades) == 0 {
		fmt.Println("No grades yet")

		return nil
	}

	for _, g := range grades {
		fmt.Printf("%5d  %6.1f  %s\n", g.SubmissionID, g.Score, g.Feedback)
	}

	return nil
}
