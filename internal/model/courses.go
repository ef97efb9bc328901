package model

//
// courses.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "time"

type Course struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TeacherID int64     `json:"teacherId"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"createdAt"`
}

// CourseContext is the set of accessible courses plus the current selection.
// It exists only while a valid Session exists; clearing the session clears it.
type CourseContext struct {
	Courses   []Course `json:"courses"`
	CurrentID int64    `json:"currentId"`
}

func (c *CourseContext) Current() (Course, bool) {
	for _, course := range c.Courses {
		if course.ID == c.CurrentID {
			return course, true
		}
	}

	return Course{}, false
}

// Selected report whether the user finished course onboarding.
func (c *CourseContext) Selected() bool {
	return c != nil && c.CurrentID != 0 && len(c.Courses) > 0
}

type CourseInvite struct {
	Code      string    `json:"code"`
	CourseID  int64     `json:"courseId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
