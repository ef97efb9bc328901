package model

//
// attendance.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "time"

type AttendanceSession struct {
	ID       int64     `json:"id"`
	CourseID int64     `json:"courseId"`
	Title    string    `json:"title"`
	Code     string    `json:"code"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Ended    bool      `json:"ended"`
}

type AttendanceRecord struct {
	SessionID   int64     `json:"sessionId"`
	StudentID   int64     `json:"studentId"`
	Status      string    `json:"status"`
	CheckedInAt time.Time `json:"checkedInAt"`
}

type AttendanceStats struct {
	SessionID int64 `json:"sessionId"`
	Expected  int   `json:"expected"`
	CheckedIn int   `json:"checkedIn"`
	Absent    int   `json:"absent"`
}
