package router_test

//
// guard_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"testing"

	"gitlab.com/kabes/go-spm/internal/assert"
	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/router"
	"gitlab.com/kabes/go-spm/internal/store"
)

func newGuard(t *testing.T) (*router.Guard, *store.SessionStore) {
	t.Helper()

	sstore := store.New(store.NewMemoryStorage())

	return router.NewGuard(sstore), sstore
}

func login(t *testing.T, sstore *store.SessionStore, role model.Role, withCourse bool) {
	t.Helper()

	err := sstore.Set(&model.Identity{
		ID: 1, StudentNo: "s1", Name: "Test", Role: role, Token: "tok",
	})
	assert.NoErr(t, err)

	if withCourse {
		err := sstore.SetCourseContext(&model.CourseContext{
			Courses:   []model.Course{{ID: 3, Name: "Algebra"}},
			CurrentID: 3,
		})
		assert.NoErr(t, err)
	}
}

func TestGuardUnauthenticated(t *testing.T) {
	guard, _ := newGuard(t)

	d := guard.Evaluate("/home")
	assert.True(t, !d.Allowed)
	assert.Equal(t, d.To, router.Login)
	assert.Equal(t, d.ReturnTo, "/home")

	// the login route itself stays reachable
	assert.True(t, guard.Evaluate(router.Login).Allowed)
}

func TestGuardUnknownRoute(t *testing.T) {
	guard, sstore := newGuard(t)
	login(t, sstore, model.RoleStudent, true)

	d := guard.Evaluate("/no/such/page")
	assert.True(t, !d.Allowed)
	assert.Equal(t, d.To, router.Login)
	assert.Equal(t, d.ReturnTo, "")
}

func TestGuardCourseOnboarding(t *testing.T) {
	guard, sstore := newGuard(t)
	login(t, sstore, model.RoleStudent, false)

	// authenticated but no course selected: everything except the join
	// page bounces to onboarding
	d := guard.Evaluate("/home")
	assert.True(t, !d.Allowed)
	assert.Equal(t, d.To, router.CourseJoin)

	assert.True(t, guard.Evaluate(router.CourseJoin).Allowed)
}

func TestGuardRoleMismatch(t *testing.T) {
	guard, sstore := newGuard(t)
	login(t, sstore, model.RoleStudent, true)

	assert.True(t, guard.Evaluate("/home").Allowed)
	assert.True(t, guard.Evaluate("/homework").Allowed)

	d := guard.Evaluate("/teacher/homework")
	assert.True(t, !d.Allowed)
	assert.Equal(t, d.To, router.StudentHome)
}

func TestGuardTeacher(t *testing.T) {
	guard, sstore := newGuard(t)
	login(t, sstore, model.RoleTeacher, true)

	assert.True(t, guard.Evaluate("/teacher/course").Allowed)

	d := guard.Evaluate("/attendance")
	assert.True(t, !d.Allowed)
	assert.Equal(t, d.To, router.TeacherHome)
}

func TestGuardLoginBounce(t *testing.T) {
	guard, sstore := newGuard(t)
	login(t, sstore, model.RoleStudent, true)

	d := guard.Evaluate(router.Login)
	assert.True(t, !d.Allowed)
	assert.Equal(t, d.To, router.StudentHome)
}

func TestGuardHydratesFromStorage(t *testing.T) {
	storage := store.NewMemoryStorage()

	seed := store.New(storage)
	assert.NoErr(t, seed.Set(&model.Identity{
		ID: 1, StudentNo: "s1", Name: "Test", Role: model.RoleTeacher, Token: "tok",
	}))
	assert.NoErr(t, seed.SetCourseContext(&model.CourseContext{
		Courses:   []model.Course{{ID: 3, Name: "Algebra"}},
		CurrentID: 3,
	}))

	// a fresh process sees only the persisted state
	guard := router.NewGuard(store.New(storage))

	assert.True(t, guard.Evaluate("/teacher/course").Allowed)
}
