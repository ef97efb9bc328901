package api

// attendance.go
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

type Attendance struct {
	d *transport.Dispatcher
}

func NewAttendanceI(i do.Injector) (*Attendance, error) {
	return &Attendance{do.MustInvoke[*transport.Dispatcher](i)}, nil
}

// My return the current student's checkin records.
func (a *Attendance) My(ctx context.Context) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	if err := a.d.Get(ctx, "/attendance/sessions/my", &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (a *Attendance) Checkin(ctx context.Context, code string) (*model.AttendanceRecord, error) {
	body := struct {
		Code string `json:"code"`
	}{code}

	var record model.AttendanceRecord
	if err := a.d.Post(ctx, "/attendance/checkin", &body, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// CreateSession open a new checkin window; teacher only.
func (a *Attendance) CreateSession(ctx context.Context, session *model.AttendanceSession) (*model.AttendanceSession, error) {
	var created model.AttendanceSession
	if err := a.d.Post(ctx, "/attendance/sessions", session, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (a *Attendance) EndSession(ctx context.Context, id int64) error {
	return a.d.Post(ctx, fmt.Sprintf("/attendance/sessions/%d/end", id), nil, nil)
}

func (a *Attendance) Sessions(ctx context.Context) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	if err := a.d.Get(ctx, "/attendance/sessions", &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (a *Attendance) Records(ctx context.Context, sessionID int64) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	if err := a.d.Get(ctx, fmt.Sprintf("/attendance/sessions/%d/records", sessionID), &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (a *Attendance) Stats(ctx context.Context, sessionID int64) (*model.AttendanceStats, error) {
	var stats model.AttendanceStats
	if err := a.d.Get(ctx, fmt.Sprintf("/attendance/sessions/%d/stats", sessionID), &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}
