package store

//
// mod_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"encoding/json"
	"testing"
	"time"

	"gitlab.com/kabes/go-spm/internal/assert"
	"gitlab.com/kabes/go-spm/internal/model"
)

func testIdentity() *model.Identity {
	return &model.Identity{
		ID:        42,
		StudentNo: "s1001",
		Name:      "Jan Kowalski",
		Role:      model.RoleStudent,
		Token:     "token-abc",
	}
}

func TestSetAndHydrate(t *testing.T) {
	storage := NewMemoryStorage()

	s := New(storage)
	assert.NoErr(t, s.Set(testIdentity()))

	// a fresh store over the same storage must see the session
	s2 := New(storage)

	sess := s2.Hydrate()
	if sess == nil {
		t.Fatal("got nil session after hydrate")
	}

	assert.Equal(t, sess.Identity.StudentNo, "s1001")
	assert.Equal(t, sess.Identity.Token, "token-abc")
	assert.True(t, !sess.EstablishedAt.IsZero())
}

func TestHydrateIdempotent(t *testing.T) {
	storage := NewMemoryStorage()

	s := New(storage)
	assert.NoErr(t, s.Set(testIdentity()))

	first := s.Hydrate()
	second := s.Hydrate()

	if first != second {
		t.Error("repeated hydrate returned different sessions")
	}
}

func TestHydrateExpired(t *testing.T) {
	storage := NewMemoryStorage()

	sess := model.Session{
		Identity:      *testIdentity(),
		EstablishedAt: time.Now().UTC().Add(-SessionTTL - time.Hour),
	}
	data, err := json.Marshal(&sess)
	assert.NoErr(t, err)
	assert.NoErr(t, storage.Set(KeySession, data))
	assert.NoErr(t, storage.Set(KeyCourses, []byte(`{"courses":[],"currentId":0}`)))

	s := New(storage)
	if s.Hydrate() != nil {
		t.Error("expired session survived hydrate")
	}

	// expired state must be purged from storage, not only from memory
	_, ok, err := storage.Get(KeySession)
	assert.NoErr(t, err)
	assert.True(t, !ok)

	_, ok, err = storage.Get(KeyCourses)
	assert.NoErr(t, err)
	assert.True(t, !ok)
}

func TestHydrateMalformed(t *testing.T) {
	storage := NewMemoryStorage()
	assert.NoErr(t, storage.Set(KeySession, []byte(`{not json`)))

	s := New(storage)
	if s.Hydrate() != nil {
		t.Error("malformed state produced a session")
	}
}

func TestSetNilClears(t *testing.T) {
	storage := NewMemoryStorage()

	s := New(storage)
	assert.NoErr(t, s.Set(testIdentity()))
	assert.NoErr(t, s.Set(nil))

	if s.Hydrate() != nil {
		t.Error("session survived Set(nil)")
	}

	_, ok, err := storage.Get(KeySession)
	assert.NoErr(t, err)
	assert.True(t, !ok)
}

func TestClearCascades(t *testing.T) {
	storage := NewMemoryStorage()

	s := New(storage)
	assert.NoErr(t, s.Set(testIdentity()))
	assert.NoErr(t, s.SetCourseContext(&model.CourseContext{
		Courses:   []model.Course{{ID: 7, Name: "Algebra"}},
		CurrentID: 7,
	}))

	s.Clear()

	if s.Hydrate() != nil {
		t.Error("session survived Clear")
	}

	if s.CourseContext() != nil {
		t.Error("course context survived Clear")
	}

	s2 := New(storage)
	s2.Hydrate()

	if s2.CourseContext() != nil {
		t.Error("course context survived Clear in storage")
	}
}

func TestCourseContextRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()

	s := New(storage)
	assert.NoErr(t, s.Set(testIdentity()))
	assert.NoErr(t, s.SetCourseContext(&model.CourseContext{
		Courses:   []model.Course{{ID: 7, Name: "Algebra"}, {ID: 9, Name: "Physics"}},
		CurrentID: 9,
	}))

	s2 := New(storage)
	s2.Hydrate()

	cctx := s2.CourseContext()
	assert.True(t, cctx.Selected())

	current, ok := cctx.Current()
	assert.True(t, ok)
	assert.Equal(t, current.Name, "Physics")
}

func TestCourseContextRequiresSession(t *testing.T) {
	s := New(NewMemoryStorage())

	err := s.SetCourseContext(&model.CourseContext{CurrentID: 1})
	assert.Err(t, err)
}

func TestToken(t *testing.T) {
	storage := NewMemoryStorage()

	s := New(storage)
	assert.Equal(t, s.Token(), "")

	assert.NoErr(t, s.Set(testIdentity()))

	s2 := New(storage)
	assert.Equal(t, s2.Token(), "token-abc")
}
