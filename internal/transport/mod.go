// Package transport is the single path for all outbound calls to the SPM
// backend.
//
// It attaches the bearer credential from the session store, decodes the
// response envelope and funnels every failure into one normalized *Error,
// so callers never branch on failure origin. Authentication failures
// (401, or 403 with an expired-credential marker) additionally clear the
// session and schedule a redirect to the login route.
package transport

//
// mod.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/store"
)

// RedirectDelay is how long the dispatcher waits before the forced
// redirect to the login route, leaving the notification time to render.
// The scheduled redirect is fire-and-forget and not cancellable.
const RedirectDelay = 1500 * time.Millisecond

const LoginRoute = "/login"

const defaultTimeout = 8 * time.Second

// auth endpoints carry no credential and handle their own messaging.
var authEndpoints = []string{"/auth/login", "/auth/register"}

type Configuration struct {
	BaseURL       string
	Timeout       time.Duration
	RedirectDelay time.Duration
}

type Dispatcher struct {
	cfg       Configuration
	client    *http.Client
	store     *store.SessionStore
	notifier  Notifier
	navigator Navigator
}

func New(cfg Configuration, sstore *store.SessionStore, notifier Notifier, navigator Navigator) *Dispatcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.RedirectDelay == 0 {
		cfg.RedirectDelay = RedirectDelay
	}

	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Dispatcher{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		store:     sstore,
		notifier:  notifier,
		navigator: navigator,
	}
}

func NewI(i do.Injector) (*Dispatcher, error) {
	return New(
		do.MustInvoke[Configuration](i),
		do.MustInvoke[*store.SessionStore](i),
		do.MustInvoke[Notifier](i),
		do.MustInvoke[Navigator](i),
	), nil
}

func (d *Dispatcher) Get(ctx context.Context, path string, out any) error {
	return d.Send(ctx, http.MethodGet, path, nil, out)
}

func (d *Dispatcher) Post(ctx context.Context, path string, body, out any) error {
	return d.Send(ctx, http.MethodPost, path, body, out)
}

func (d *Dispatcher) Put(ctx context.Context, path string, body, out any) error {
	return d.Send(ctx, http.MethodPut, path, body, out)
}

func (d *Dispatcher) Delete(ctx context.Context, path string) error {
	return d.Send(ctx, http.MethodDelete, path, nil, nil)
}

// Send issue one call against the backend. On success the envelope's data
// field is unmarshalled into out (when non-nil). On any failure the
// returned error is a *Error; callers never see a raw transport error.
func (d *Dispatcher) Send(ctx context.Context, method, path string, body, out any) error {
	var reqbody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encode request failed: %s", err)}
		}

		reqbody = bytes.NewReader(data)
	}

	req, err := d.newRequest(ctx, method, path, reqbody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return d.do(req, path, out)
}

// PostMultipart upload one file plus extra form fields; used by the file
// endpoints only.
func (d *Dispatcher) PostMultipart(ctx context.Context, path, field, filename string,
	content io.Reader, fields map[string]string, out any,
) error {
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Message: fmt.Sprintf("prepare upload failed: %s", err)}
	}

	if _, err := io.Copy(part, content); err != nil {
		return &Error{Message: fmt.Sprintf("read upload content failed: %s", err)}
	}

	for key, value := range fields {
		_ = mw.WriteField(key, value)
	}

	if err := mw.Close(); err != nil {
		return &Error{Message: fmt.Sprintf("prepare upload failed: %s", err)}
	}

	req, err := d.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	return d.do(req, path, out)
}

// Download stream a raw (non-enveloped) response body into w.
func (d *Dispatcher) Download(ctx context.Context, path string, w io.Writer) error {
	req, err := d.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return d.transportFailure(path, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return d.classifyFailure(path, resp.StatusCode, body)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return d.transportFailure(path, err)
	}

	return nil
}

func (d *Dispatcher) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, d.cfg.BaseURL+path, body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("prepare request failed: %s", err)}
	}

	req.Header.Set("X-Request-Id", xid.New().String())

	// auth endpoints are reachable without a session
	if !isAuthEndpoint(path) {
		if token := d.store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

func (d *Dispatcher) do(req *http.Request, path string, out any) error {
	logger := log.Ctx(req.Context())
	logger.Debug().Str("req_id", req.Header.Get("X-Request-Id")).
		Msgf("%s %s", req.Method, path)

	resp, err := d.client.Do(req)
	if err != nil {
		return d.transportFailure(path, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return d.transportFailure(path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return d.classifyFailure(path, resp.StatusCode, body)
	}

	return d.decodeSuccess(path, body, out)
}

func isAuthEndpoint(path string) bool {
	if q := strings.IndexByte(path, '?'); q >= 0 {
		path = path[:q]
	}

	for _, e := range authEndpoints {
		if path == e {
			return true
		}
	}

	return false
}
