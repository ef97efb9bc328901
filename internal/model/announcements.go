package model

//
// announcements.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "time"

type Announcement struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NewAnnouncement struct {
	CourseID int64  `json:"courseId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPinned bool   `json:"isPinned"`
}
