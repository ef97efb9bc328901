// Package spmtest run a fake SPM backend for package tests: a chi router
// answering with the production envelope shape, recording every request.
package spmtest

//
// backend.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Envelope mirror the backend's uniform response wrapper.
type Envelope struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
	TraceID   string `json:"traceId"`
}

// RecordedRequest keep what the dispatcher actually sent.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type Backend struct {
	Router chi.Router

	srv *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

func New(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{Router: chi.NewRouter()}
	b.Router.Use(b.record)
	b.srv = httptest.NewServer(b.Router)
	t.Cleanup(b.srv.Close)

	return b
}

func (b *Backend) URL() string {
	return b.srv.URL
}

func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]RecordedRequest(nil), b.requests...)
}

func (b *Backend) LastRequest() (RecordedRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.requests) == 0 {
		return RecordedRequest{}, false
	}

	return b.requests[len(b.requests)-1], true
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:        req.Method,
			Path:          req.URL.Path,
			Authorization: req.Header.Get("Authorization"),
			RequestID:     req.Header.Get("X-Request-Id"),
		})
		b.mu.Unlock()

		next.ServeHTTP(w, req)
	})
}

//-------------------------------------------------------------

// Reply register a handler answering with an enveloped payload.
func (b *Backend) Reply(method, pattern string, code int, data any) {
	b.Router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteEnvelope(w, r, code, "", data)
	}))
}

// ReplyBusinessError register a handler answering 200 with a failing
// envelope code.
func (b *Backend) ReplyBusinessError(method, pattern string, code int, message string) {
	b.Router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteEnvelope(w, r, code, message, nil)
	}))
}

// ReplyStatus register a handler answering with a raw http status and an
// optional enveloped body.
func (b *Backend) ReplyStatus(method, pattern string, status int, body any) {
	b.Router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body == nil {
			w.WriteHeader(status)

			return
		}

		render.Status(r, status)
		render.JSON(w, r, body)
	}))
}

func WriteEnvelope(w http.ResponseWriter, r *http.Request, code int, message string, data any) {
	render.JSON(w, r, &Envelope{
		Code:      code,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
		TraceID:   "trace-0001",
	})
}
