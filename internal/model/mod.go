// Package model provide objects shared between the transport, store and cli layers.
package model

//
// mod.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}
