// Package router hold the static route table and the pre-navigation guard.
package router

//
// routes.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "gitlab.com/kabes/go-spm/internal/model"

const (
	Login       = "/login"
	StudentHome = "/home"
	TeacherHome = "/teacher/course"
	CourseJoin  = "/course/join"
)

// Route is the immutable authorization requirement of one navigable path.
type Route struct {
	Path         string
	RequiresAuth bool
	Role         model.Role // empty: any authenticated role
}

// Table mirror the original client's route tree.
var Table = []Route{
	{Path: Login},

	{Path: CourseJoin, RequiresAuth: true},

	{Path: StudentHome, RequiresAuth: true, Role: model.RoleStudent},
	{Path: "/homework", RequiresAuth: true, Role: model.RoleStudent},
	{Path: "/homework/detail", RequiresAuth: true, Role: model.RoleStudent},
	{Path: "/attendance", RequiresAuth: true, Role: model.RoleStudent},
	{Path: "/attendance/leave", RequiresAuth: true, Role: model.RoleStudent},
	{Path: "/discussion", RequiresAuth: true, Role: model.RoleStudent},
	{Path: "/discussion/detail", RequiresAuth: true, Role: model.RoleStudent},
	{Path: "/profile", RequiresAuth: true, Role: model.RoleStudent},

	{Path: TeacherHome, RequiresAuth: true, Role: model.RoleTeacher},
	{Path: "/teacher/attendance", RequiresAuth: true, Role: model.RoleTeacher},
	{Path: "/teacher/attendance/detail", RequiresAuth: true, Role: model.RoleTeacher},
	{Path: "/teacher/homework", RequiresAuth: true, Role: model.RoleTeacher},
	{Path: "/teacher/homework/detail", RequiresAuth: true, Role: model.RoleTeacher},
	{Path: "/teacher/homework/create", RequiresAuth: true, Role: model.RoleTeacher},
	{Path: "/teacher/discussion", RequiresAuth: true, Role: model.RoleTeacher},
	{Path: "/teacher/discussion/detail", RequiresAuth: true, Role: model.RoleTeacher},
	{Path: "/teacher/profile", RequiresAuth: true, Role: model.RoleTeacher},
}

func Lookup(path string) (Route, bool) {
	for _, r := range Table {
		if r.Path == path {
			return r, true
		}
	}

	return Route{}, false
}

// Landing is the default route of a role; unknown roles land on login.
func Landing(role model.Role) string {
	switch role {
	case model.RoleStudent:
		return StudentHome
	case model.RoleTeacher:
		return TeacherHome
	}

	return Login
}
