package model

//
// sessions.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"time"

	"github.com/rs/zerolog"
)

// Identity is the authenticated user record returned by the login endpoint.
type Identity struct {
	ID        int64  `json:"id"`
	StudentNo string `json:"studentNo"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Token     string `json:"token"`
}

// Session bind an Identity to the moment it was established.
// Validity is checked lazily against a max lifetime; there is no timer.
type Session struct {
	Identity      Identity  `json:"identity"`
	EstablishedAt time.Time `json:"establishedAt"`
}

func (s *Session) IsValid(maxlifetime time.Duration) bool {
	return !s.EstablishedAt.Add(maxlifetime).Before(time.Now().UTC())
}

func (s *Session) MarshalZerologObject(event *zerolog.Event) {
	event.Str("student_no", s.Identity.StudentNo).
		Str("role", string(s.Identity.Role)).
		Time("established_at", s.EstablishedAt).
		Dur("age", time.Since(s.EstablishedAt))
}
