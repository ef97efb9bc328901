package model

//
// assignments.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "time"

type Assignment struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueAt       time.Time `json:"dueAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Submission struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignmentId"`
	StudentID    int64     `json:"studentId"`
	Content      string    `json:"content"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type Grade struct {
	SubmissionID int64     `json:"submissionId"`
	Score        float64   `json:"score"`
	Feedback     string    `json:"feedback"`
	Released     bool      `json:"released"`
	GradedAt     time.Time `json:"gradedAt"`
}
