package model

//
// discussions.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "time"

type Discussion struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	AuthorID  int64     `json:"authorId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPinned  bool      `json:"isPinned"`
	IsClosed  bool      `json:"isClosed"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
}

type DiscussionReply struct {
	ID           int64     `json:"id"`
	DiscussionID int64     `json:"discussionId"`
	AuthorID     int64     `json:"authorId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}
