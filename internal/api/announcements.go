package api

// announcements.go
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

type Announcements struct {
	d *transport.Dispatcher
}

func NewAnnouncementsI(i do.Injector) (*Announcements, error) {
	return &Announcements{do.MustInvoke[*transport.Dispatcher](i)}, nil
}

// List return announcements of one course; courseID 0 selects the default
// course, includeGlobal adds school-wide announcements.
func (a *Announcements) List(ctx context.Context, courseID int64, includeGlobal bool) ([]model.Announcement, error) {
	params := url.Values{}
	if courseID != 0 {
		params.Set("courseId", strconv.FormatInt(courseID, 10))
	}

	params.Set("includeGlobal", strconv.FormatBool(includeGlobal))

	var announcements []model.Announcement
	if err := a.d.Get(ctx, "/announcements?"+params.Encode(), &announcements); err != nil {
		return nil, err
	}

	return announcements, nil
}

func (a *Announcements) Get(ctx context.Context, id int64) (*model.Announcement, error) {
	var announcement model.Announcement
	if err := a.d.Get(ctx, fmt.Sprintf("/announcements/%d", id), &announcement); err != nil {
		return nil, err
	}

	return &announcement, nil
}

// Create publish an announcement; teacher only.
func (a *Announcements) Create(ctx context.Context, announcement *model.NewAnnouncement) (*model.Announcement, error) {
	var created model.Announcement
	if err := a.d.Post(ctx, "/announcements", announcement, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (a *Announcements) Update(ctx context.Context, id int64, announcement *model.NewAnnouncement) error {
	return a.d.Put(ctx, fmt.Sprintf("/announcements/%d", id), announcement, nil)
}

func (a *Announcements) Delete(ctx context.Context, id int64) error {
	return a.d.Delete(ctx, fmt.Sprintf("/announcements/%d", id))
}
