package api

// courses.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/transport"
)

type Courses struct {
	d *transport.Dispatcher
}

func NewCoursesI(i do.Injector) (*Courses, error) {
	return &Courses{do.MustInvoke[*transport.Dispatcher](i)}, nil
}

func (c *Courses) My(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := c.d.Get(ctx, "/courses/my", &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

func (c *Courses) Get(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	if err := c.d.Get(ctx, fmt.Sprintf("/courses/%d", id), &course); err != nil {
		return nil, err
	}

	return &course, nil
}

// Join enroll the current user through an invite code.
func (c *Courses) Join(ctx context.Context, inviteCode string) (*model.Course, error) {
	body := struct {
		InviteCode string `json:"inviteCode"`
	}{inviteCode}

	var course model.Course
	if err := c.d.Post(ctx, "/courses/join", &body, &course); err != nil {
		return nil, err
	}

	return &course, nil
}

// CreateInvite issue a new invite code for a course; teacher only.
func (c *Courses) CreateInvite(ctx context.Context, courseID int64, maxUses int) (*model.CourseInvite, error) {
	body := struct {
		MaxUses int `json:"maxUses"`
	}{maxUses}

	var invite model.CourseInvite
	if err := c.d.Post(ctx, fmt.Sprintf("/courses/%d/invites", courseID), &body, &invite); err != nil {
		return nil, err
	}

	return &invite, nil
}
