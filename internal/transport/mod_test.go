package transport_test

//
// mod_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"gitlab.com/kabes/go-spm/internal/assert"
	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/spmtest"
	"gitlab.com/kabes/go-spm/internal/store"
	"gitlab.com/kabes/go-spm/internal/transport"
)

type recNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.msgs = append(n.msgs, message)
}

func (n *recNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.msgs...)
}

type redirect struct {
	target string
	delay  time.Duration
}

type recNavigator struct {
	mu        sync.Mutex
	redirects []redirect
}

func (n *recNavigator) ScheduleRedirect(target string, delay time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.redirects = append(n.redirects, redirect{target, delay})
}

func (n *recNavigator) scheduled() []redirect {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]redirect(nil), n.redirects...)
}

//-------------------------------------------------------------

type testEnv struct {
	backend   *spmtest.Backend
	store     *store.SessionStore
	notifier  *recNotifier
	navigator *recNavigator
	d         *transport.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := spmtest.New(t)
	sstore := store.New(store.NewMemoryStorage())
	notifier := &recNotifier{}
	navigator := &recNavigator{}

	d := transport.New(transport.Configuration{
		BaseURL:       backend.URL(),
		RedirectDelay: time.Millisecond,
	}, sstore, notifier, navigator)

	return &testEnv{backend, sstore, notifier, navigator, d}
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()

	err := e.store.Set(&model.Identity{
		ID: 1, StudentNo: "s1", Name: "Test", Role: model.RoleStudent, Token: "token-abc",
	})
	assert.NoErr(t, err)
}

//-------------------------------------------------------------

func TestBearerHeader(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.backend.Reply(http.MethodGet, "/ping", 200, "pong")

	var out string
	assert.NoErr(t, env.d.Get(context.Background(), "/ping", &out))
	assert.Equal(t, out, "pong")

	req, ok := env.backend.LastRequest()
	assert.True(t, ok)
	assert.Equal(t, req.Authorization, "Bearer token-abc")
	assert.NotEqual(t, req.RequestID, "")
}

func TestNoBearerOnAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.backend.Reply(http.MethodPost, "/auth/login", 200, nil)

	assert.NoErr(t, env.d.Post(context.Background(), "/auth/login", map[string]string{}, nil))

	req, ok := env.backend.LastRequest()
	assert.True(t, ok)
	assert.Equal(t, req.Authorization, "")
}

func TestSuccessEnvelopeData(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Reply(http.MethodGet, "/courses/1", 200,
		map[string]any{"id": 1, "name": "Algebra"})

	var course model.Course
	assert.NoErr(t, env.d.Get(context.Background(), "/courses/1", &course))
	assert.Equal(t, course.Name, "Algebra")
}

func TestAuthEndpointRawPayload(t *testing.T) {
	env := newTestEnv(t)

	// the login endpoint may answer with the bare payload, no envelope
	env.backend.Router.Post("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"studentNo":"s5","name":"Raw","role":"STUDENT","token":"t"}`))
	})

	var identity model.Identity
	assert.NoErr(t, env.d.Post(context.Background(), "/auth/login", map[string]string{}, &identity))
	assert.Equal(t, identity.StudentNo, "s5")
}

func TestBusinessError(t *testing.T) {
	env := newTestEnv(t)
	env.backend.ReplyBusinessError(http.MethodGet, "/courses/my", 1001, "not enrolled")

	err := env.d.Get(context.Background(), "/courses/my", nil)

	var terr *transport.Error
	assert.True(t, errors.As(err, &terr))
	assert.Equal(t, terr.Message, "not enrolled")
	assert.Equal(t, terr.Code, 1001)
	assert.Equal(t, terr.TraceID, "trace-0001")

	assert.Equal(t, len(env.notifier.messages()), 1)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.backend.ReplyStatus(http.MethodGet, "/courses/my", http.StatusUnauthorized, nil)

	err := env.d.Get(context.Background(), "/courses/my", nil)
	assert.ErrSpec(t, err, "unauthorized, please re-login")

	if env.store.Hydrate() != nil {
		t.Error("session survived a 401 answer")
	}

	redirects := env.navigator.scheduled()
	assert.Equal(t, len(redirects), 1)
	assert.Equal(t, redirects[0].target, transport.LoginRoute)
}

func TestForbiddenExpiredCredential(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.backend.ReplyStatus(http.MethodGet, "/courses/my", http.StatusForbidden,
		&spmtest.Envelope{Code: 403, Message: "forbidden", Data: "JWT expired at 2026-01-01"})

	err := env.d.Get(context.Background(), "/courses/my", nil)
	assert.ErrSpec(t, err, "credential expired, please re-login")

	if env.store.Hydrate() != nil {
		t.Error("session survived an expired-credential answer")
	}

	assert.Equal(t, len(env.navigator.scheduled()), 1)
}

func TestForbiddenPlain(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.backend.ReplyStatus(http.MethodGet, "/courses/my", http.StatusForbidden,
		&spmtest.Envelope{Code: 403, Message: "teachers only"})

	err := env.d.Get(context.Background(), "/courses/my", nil)
	assert.ErrSpec(t, err, "teachers only")

	// a plain permission failure must not invalidate the session
	if env.store.Hydrate() == nil {
		t.Error("session lost on a plain 403 answer")
	}

	assert.Equal(t, len(env.navigator.scheduled()), 0)
}

func TestStatusMessages(t *testing.T) {
	cases := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, "invalid request parameters"},
		{http.StatusNotFound, "resource not found"},
		{http.StatusInternalServerError, "internal server error"},
		{http.StatusBadGateway, "bad gateway"},
		{http.StatusServiceUnavailable, "service unavailable"},
		{http.StatusTeapot, "request failed (418)"},
	}

	for _, tc := range cases {
		env := newTestEnv(t)
		env.backend.ReplyStatus(http.MethodGet, "/thing", tc.status, nil)

		err := env.d.Get(context.Background(), "/thing", nil)
		assert.ErrSpec(t, err, tc.message)
	}
}

func TestNetworkFailure(t *testing.T) {
	sstore := store.New(store.NewMemoryStorage())
	notifier := &recNotifier{}
	navigator := &recNavigator{}

	// nothing listens here
	d := transport.New(transport.Configuration{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	}, sstore, notifier, navigator)

	err := d.Get(context.Background(), "/ping", nil)
	assert.ErrSpec(t, err, "network unreachable, check connection")
	assert.Equal(t, len(notifier.messages()), 1)
	assert.Equal(t, len(navigator.scheduled()), 0)
}

func TestAuthEndpointSuppressesNotification(t *testing.T) {
	env := newTestEnv(t)
	env.backend.ReplyStatus(http.MethodPost, "/auth/login", http.StatusUnauthorized, nil)

	err := env.d.Post(context.Background(), "/auth/login", map[string]string{}, nil)
	assert.Err(t, err)

	// login presents its own outcome; the global toast stays silent
	assert.Equal(t, len(env.notifier.messages()), 0)
}

func TestMalformedResponse(t *testing.T) {
	env := newTestEnv(t)
	env.backend.Router.Get("/broken", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`this is not json`))
	})

	err := env.d.Get(context.Background(), "/broken", nil)
	assert.ErrSpec(t, err, "malformed response from server")
}
