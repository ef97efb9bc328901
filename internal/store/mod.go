// Package store own the authenticated session and the cached course context.
//
// Memory is authoritative; durable storage is a mirror written on every
// mutation and read back only at hydration. All mutation goes through this
// package.
package store

//
// mod.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/aerr"
	"gitlab.com/kabes/go-spm/internal/model"
)

// SessionTTL is how long a persisted session stays usable. Expiry is
// detected lazily at hydration, never by timer.
const SessionTTL = 7 * 24 * time.Hour

const (
	KeySession = "session"
	KeyCourses = "courses"
)

type SessionStore struct {
	mu      sync.Mutex
	storage Storage
	session *model.Session
	courses *model.CourseContext

	maxlifetime time.Duration
}

func New(storage Storage) *SessionStore {
	return &SessionStore{
		storage:     storage,
		maxlifetime: SessionTTL,
	}
}

func NewI(i do.Injector) (*SessionStore, error) {
	return New(do.MustInvoke[Storage](i)), nil
}

// Set establish a new session for identity, or clear everything when
// identity is nil. Memory and durable storage are written in that order;
// there is no atomicity between the two halves.
func (s *SessionStore) Set(identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity == nil {
		s.clearLocked()

		return nil
	}

	sess := &model.Session{
		Identity:      *identity,
		EstablishedAt: time.Now().UTC(),
	}
	s.session = sess

	data, err := json.Marshal(sess)
	if err != nil {
		return aerr.Wrapf(err, "marshal session failed").WithTag(aerr.InternalError)
	}

	if err := s.storage.Set(KeySession, data); err != nil {
		return aerr.ApplyFor(aerr.ErrStorage, err, "persist session failed")
	}

	log.Logger.Debug().Object("session", sess).Msg("session established")

	return nil
}

// Hydrate populate memory from durable storage when memory is empty and
// return the current session, possibly nil. Expired sessions are purged
// from durable storage; malformed durable data counts as absence.
// Calling it again with unchanged durable state is a no-op.
func (s *SessionStore) Hydrate() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return s.session
	}

	sess, ok := readJSON[model.Session](s.storage, KeySession)
	if !ok {
		return nil
	}

	if !sess.IsValid(s.maxlifetime) {
		log.Logger.Debug().Object("session", &sess).Msg("persisted session expired; purging")
		s.purgeLocked()

		return nil
	}

	s.session = &sess

	if courses, ok := readJSON[model.CourseContext](s.storage, KeyCourses); ok {
		s.courses = &courses
	}

	return s.session
}

// Clear empty memory and durable storage; the course context is cleared
// together with the session.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
}

func (s *SessionStore) SetCourseContext(courses *model.CourseContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return aerr.New("no active session").WithTag(aerr.AuthError)
	}

	s.courses = courses

	if courses == nil {
		if err := s.storage.Delete(KeyCourses); err != nil {
			return aerr.ApplyFor(aerr.ErrStorage, err, "delete course context failed")
		}

		return nil
	}

	data, err := json.Marshal(courses)
	if err != nil {
		return aerr.Wrapf(err, "marshal course context failed").WithTag(aerr.InternalError)
	}

	if err := s.storage.Set(KeyCourses, data); err != nil {
		return aerr.ApplyFor(aerr.ErrStorage, err, "persist course context failed")
	}

	return nil
}

func (s *SessionStore) CourseContext() *model.CourseContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.courses
}

// Token return the bearer credential of the current session, hydrating
// first; empty string when there is none.
func (s *SessionStore) Token() string {
	if sess := s.Hydrate(); sess != nil {
		return sess.Identity.Token
	}

	return ""
}

func (s *SessionStore) clearLocked() {
	s.session = nil
	s.courses = nil
	s.purgeLocked()

	log.Logger.Debug().Msg("session cleared")
}

func (s *SessionStore) purgeLocked() {
	if err := s.storage.Delete(KeySession); err != nil {
		log.Logger.Warn().Err(err).Msg("purge session from storage failed")
	}

	if err := s.storage.Delete(KeyCourses); err != nil {
		log.Logger.Warn().Err(err).Msg("purge course context from storage failed")
	}
}

func readJSON[T any](storage Storage, key string) (T, bool) {
	var value T

	data, ok, err := storage.Get(key)
	if err != nil {
		log.Logger.Warn().Err(err).Str("key", key).Msg("read storage failed")

		return value, false
	}

	if !ok {
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		// unparseable state is treated as absence, not an error
		log.Logger.Warn().Err(err).Str("key", key).Msg("malformed state; ignoring")

		var zero T

		return zero, false
	}

	return value, true
}
