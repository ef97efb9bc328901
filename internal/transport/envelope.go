package transport

//
// envelope.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"encoding/json"
)

// envelope is the uniform response wrapper used by the backend.
type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	TraceID   string          `json:"traceId"`
}

func (e *envelope) success() bool {
	return e.Code == 200 || e.Code == 201 //nolint:mnd
}

// decodeSuccess interpret a 2xx body. Regular endpoints always answer with
// an envelope; the auth endpoints may answer with the bare payload, which
// is accepted as-is (the one-level unwrap of the original client).
func (d *Dispatcher) decodeSuccess(path string, body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Code == 0 {
		if isAuthEndpoint(path) {
			return unmarshalOut(body, out)
		}

		return d.failure(path, &Error{Message: "malformed response from server"})
	}

	if env.success() {
		return unmarshalOut(env.Data, out)
	}

	msg := env.Message
	if msg == "" {
		msg = "request failed"
	}

	return d.failure(path, &Error{
		Message: msg,
		Code:    env.Code,
		TraceID: env.TraceID,
	})
}

func unmarshalOut(data []byte, out any) error {
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: "malformed response from server"}
	}

	return nil
}
