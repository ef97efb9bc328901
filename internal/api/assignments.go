package api

// assignments.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"context"
	"fmt"
	"net/url"

	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/transport"
)

type Assignments struct {
	d *transport.Dispatcher
}

func NewAssignmentsI(i do.Injector) (*Assignments, error) {
	return &Assignments{do.MustInvoke[*transport.Dispatcher](i)}, nil
}

// List filter by status: all, progress, submitted, graded.
func (a *Assignments) List(ctx context.Context, status string) ([]model.Assignment, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}

	var assignments []model.Assignment
	if err := a.d.Get(ctx, "/assignments?"+params.Encode(), &assignments); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (a *Assignments) Get(ctx context.Context, id int64) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := a.d.Get(ctx, fmt.Sprintf("/assignments/%d", id), &assignment); err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (a *Assignments) Submit(ctx context.Context, id int64, content string) (*model.Submission, error) {
	body := struct {
		Content string `json:"content"`
	}{content}

	var submission model.Submission
	if err := a.d.Post(ctx, fmt.Sprintf("/assignments/%d/submissions", id), &body, &submission); err != nil {
		return nil, err
	}

	return &submission, nil
}

func (a *Assignments) MySubmission(ctx context.Context, id int64) (*model.Submission, error) {
	var submission model.Submission
	if err := a.d.Get(ctx, fmt.Sprintf("/assignments/%d/submissions/me", id), &submission); err != nil {
		return nil, err
	}

	return &submission, nil
}

// Grade score one submission; teacher only.
func (a *Assignments) Grade(ctx context.Context, id, submissionID int64, grade *model.Grade) error {
	return a.d.Post(ctx,
		fmt.Sprintf("/assignments/%d/submissions/%d/grade", id, submissionID), grade, nil)
}

func (a *Assignments) MyGrades(ctx context.Context) ([]model.Grade, error) {
	var grades []model.Grade
	if err := a.d.Get(ctx, "/assignments/grades/me", &grades); err != nil {
		return nil, err
	}

	return grades, nil
}
