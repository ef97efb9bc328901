package transport

//
// errors.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// expiredMarker is the substring the backend puts into the data field of a
// 403 answer when the credential expired.
const expiredMarker = "JWT expired"

const maxErrorBody = 64 * 1024

// Error is the normalized result of any failed call: business failure,
// transport failure or unreachable network. Every caller of the
// dispatcher sees this shape and nothing else.
type Error struct {
	Message string
	Code    int // application code from the envelope, when present
	Status  int // http status, when a response was received
	TraceID string
	Data    json.RawMessage
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}

	return e.Message
}

//-------------------------------------------------------------

// classifyFailure translate an error response into a user message and,
// for authentication failures, invalidate the session and schedule the
// login redirect.
func (d *Dispatcher) classifyFailure(path string, status int, body []byte) error {
	var env envelope

	_ = json.Unmarshal(body, &env)

	var (
		message     string
		invalidated bool
	)

	switch status {
	case http.StatusBadRequest:
		message = messageOr(&env, "invalid request parameters")

	case http.StatusUnauthorized:
		message = "unauthorized, please re-login"
		invalidated = true

	case http.StatusForbidden:
		if credentialExpired(&env) {
			message = "credential expired, please re-login"
			invalidated = true
		} else {
			message = messageOr(&env, "insufficient permission")
		}

	case http.StatusNotFound:
		message = "resource not found"

	case http.StatusInternalServerError:
		message = messageOr(&env, "internal server error")

	case http.StatusBadGateway:
		message = "bad gateway"

	case http.StatusServiceUnavailable:
		message = "service unavailable"

	default:
		message = messageOr(&env, fmt.Sprintf("request failed (%d)", status))
	}

	if invalidated {
		// every failing call clears the session and schedules its own
		// redirect; duplicates within the delay window are tolerated
		d.store.Clear()
		d.navigator.ScheduleRedirect(LoginRoute, d.cfg.RedirectDelay)
	}

	return d.failure(path, &Error{
		Message: message,
		Code:    env.Code,
		Status:  status,
		TraceID: env.TraceID,
		Data:    body,
	})
}

// transportFailure handle calls that produced no http response at all.
func (d *Dispatcher) transportFailure(path string, err error) error {
	log.Logger.Debug().Err(err).Str("path", path).Msg("transport failure")

	return d.failure(path, &Error{Message: "network unreachable, check connection"})
}

// failure emit the user notification (suppressed for the auth endpoints,
// whose callers do their own messaging) and hand the error to the caller.
func (d *Dispatcher) failure(path string, err *Error) error {
	if !isAuthEndpoint(path) {
		d.notifier.Notify(err.Message)
	}

	return err
}

func messageOr(env *envelope, fallback string) string {
	if env.Message != "" {
		return env.Message
	}

	return fallback
}

func credentialExpired(env *envelope) bool {
	var data string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return false
	}

	return strings.Contains(data, expiredMarker)
}
