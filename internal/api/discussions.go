package api

// discussions.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/transport"
)

type Discussions struct {
	d *transport.Dispatcher
}

func NewDiscussionsI(i do.Injector) (*Discussions, error) {
	return &Discussions{do.MustInvoke[*transport.Dispatcher](i)}, nil
}

// List return discussions of a course; includeDeleted is honored for
// teachers only.
func (d *Discussions) List(ctx context.Context, courseID int64, includeDeleted bool) ([]model.Discussion, error) {
	params := url.Values{}
	if courseID != 0 {
		params.Set("courseId", strconv.FormatInt(courseID, 10))
	}

	if includeDeleted {
		params.Set("includeDeleted", "true")
	}

	var discussions []model.Discussion
	if err := d.d.Get(ctx, "/discussions?"+params.Encode(), &discussions); err != nil {
		return nil, err
	}

	return discussions, nil
}

func (d *Discussions) Get(ctx context.Context, id int64) (*model.Discussion, error) {
	var discussion model.Discussion
	if err := d.d.Get(ctx, fmt.Sprintf("/discussions/%d", id), &discussion); err != nil {
		return nil, err
	}

	return &discussion, nil
}

func (d *Discussions) Replies(ctx context.Context, id int64) ([]model.DiscussionReply, error) {
	var replies []model.DiscussionReply
	if err := d.d.Get(ctx, fmt.Sprintf("/discussions/%d/replies", id), &replies); err != nil {
		return nil, err
	}

	return replies, nil
}

func (d *Discussions) Create(ctx context.Context, courseID int64, title, content string) (*model.Discussion, error) {
	body := struct {
		CourseID int64  `json:"courseId"`
		Title    string `json:"title"`
		Content  string `json:"content"`
	}{courseID, title, content}

	var discussion model.Discussion
	if err := d.d.Post(ctx, "/discussions", &body, &discussion); err != nil {
		return nil, err
	}

	return &discussion, nil
}

func (d *Discussions) Reply(ctx context.Context, id int64, content string) (*model.DiscussionReply, error) {
	body := struct {
		Content string `json:"content"`
	}{content}

	var reply model.DiscussionReply
	if err := d.d.Post(ctx, fmt.Sprintf("/discussions/%d/replies", id), &body, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

func (d *Discussions) Update(ctx context.Context, id int64, title, content string) error {
	body := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{title, content}

	return d.d.Put(ctx, fmt.Sprintf("/discussions/%d", id), &body, nil)
}

func (d *Discussions) Delete(ctx context.Context, id int64) error {
	return d.d.Delete(ctx, fmt.Sprintf("/discussions/%d", id))
}

// Pin, Unpin and Close are teacher-only moderation actions.
func (d *Discussions) Pin(ctx context.Context, id int64) error {
	return d.d.Post(ctx, fmt.Sprintf("/discussions/%d/pin", id), nil, nil)
}

func (d *Discussions) Unpin(ctx context.Context, id int64) error {
	return d.d.Post(ctx, fmt.Sprintf("/discussions/%d/unpin", id), nil, nil)
}

func (d *Discussions) Close(ctx context.Context, id int64) error {
	return d.d.Post(ctx, fmt.Sprintf("/discussions/%d/close", id), nil, nil)
}
