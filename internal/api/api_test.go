package api_test

//
// api_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/api"
	"gitlab.com/kabes/go-spm/internal/assert"
	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/router"
	"gitlab.com/kabes/go-spm/internal/spmtest"
	"gitlab.com/kabes/go-spm/internal/store"
	"gitlab.com/kabes/go-spm/internal/transport"
)

type nullNotifier struct{}

func (nullNotifier) Notify(string) {}

type nullNavigator struct{}

func (nullNavigator) ScheduleRedirect(string, time.Duration) {}

func newTestInjector(t *testing.T) (do.Injector, *spmtest.Backend) {
	t.Helper()

	backend := spmtest.New(t)

	injector := do.New(api.Package)
	do.Provide(injector, store.NewI)
	do.Provide(injector, transport.NewI)
	do.Provide(injector, router.NewGuardI)
	do.ProvideValue(injector, store.NewMemoryStorage())
	do.ProvideValue[transport.Notifier](injector, nullNotifier{})
	do.ProvideValue[transport.Navigator](injector, nullNavigator{})
	do.ProvideValue(injector, transport.Configuration{BaseURL: backend.URL()})

	return injector, backend
}

func TestLoginFlow(t *testing.T) {
	injector, backend := newTestInjector(t)

	backend.Reply(http.MethodPost, "/auth/login", 200, &model.Identity{
		ID: 1, StudentNo: "s1", Name: "Test", Role: model.RoleStudent, Token: "tok",
	})
	backend.Reply(http.MethodGet, "/courses/my", 200, []model.Course{
		{ID: 3, Name: "Algebra"},
	})

	aapi := do.MustInvoke[*api.Auth](injector)

	identity, err := aapi.Login(context.Background(),
		api.Credentials{StudentNo: "s1", Password: "secret"})
	assert.NoErr(t, err)
	assert.Equal(t, identity.Token, "tok")

	sstore := do.MustInvoke[*store.SessionStore](injector)
	assert.NoErr(t, sstore.Set(identity))

	courses, err := do.MustInvoke[*api.Courses](injector).My(context.Background())
	assert.NoErr(t, err)
	assert.Equal(t, len(courses), 1)

	// the course listing is a regular endpoint and must carry the credential
	req, ok := backend.LastRequest()
	assert.True(t, ok)
	assert.Equal(t, req.Authorization, "Bearer tok")
}

func TestCourseJoin(t *testing.T) {
	injector, backend := newTestInjector(t)

	backend.Reply(http.MethodPost, "/courses/join", 200, &model.Course{ID: 9, Name: "Physics"})

	course, err := do.MustInvoke[*api.Courses](injector).Join(context.Background(), "INV-123")
	assert.NoErr(t, err)
	assert.Equal(t, course.ID, int64(9))
}

func TestAssignmentsList(t *testing.T) {
	injector, backend := newTestInjector(t)

	backend.Reply(http.MethodGet, "/assignments", 200, []model.Assignment{
		{ID: 1, Title: "hw1", Status: "progress"},
		{ID: 2, Title: "hw2", Status: "graded"},
	})

	assignments, err := do.MustInvoke[*api.Assignments](injector).
		List(context.Background(), "all")
	assert.NoErr(t, err)
	assert.Equal(t, len(assignments), 2)
	assert.Equal(t, assignments[1].Title, "hw2")
}

func TestAttendanceCheckin(t *testing.T) {
	injector, backend := newTestInjector(t)

	backend.Reply(http.MethodPost, "/attendance/checkin", 200, &model.AttendanceRecord{
		SessionID: 4, StudentID: 1, Status: "present",
	})

	record, err := do.MustInvoke[*api.Attendance](injector).
		Checkin(context.Background(), "CODE42")
	assert.NoErr(t, err)
	assert.Equal(t, record.Status, "present")
}
