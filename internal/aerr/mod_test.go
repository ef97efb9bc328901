package aerr

//
// mod_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapKeepCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrapf(cause, "load state failed")

	if !errors.Is(err, cause) {
		t.Errorf("wrapped error lost cause: %v", err)
	}

	if err.Error() != "load state failed (boom)" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestTags(t *testing.T) {
	err := New("no credential").WithTag(AuthError)

	if !HasTag(err, AuthError) {
		t.Error("expected auth error tag")
	}

	if HasTag(err, ValidationError) {
		t.Error("unexpected validation tag")
	}

	// tag must survive wrapping in plain errors
	werr := fmt.Errorf("call failed: %w", err)
	if !HasTag(werr, AuthError) {
		t.Error("tag lost after wrapping")
	}
}

func TestUserMessage(t *testing.T) {
	err := ErrValidation.WithUserMsg("invite code can't be empty")

	if got := GetUserMessage(err); got != "invite code can't be empty" {
		t.Errorf("got user message %q", got)
	}

	if got := GetUserMessageOr(errors.New("x"), "fallback"); got != "fallback" {
		t.Errorf("got user message %q; want fallback", got)
	}
}

func TestApplyFor(t *testing.T) {
	cause := errors.New("disk full")
	err := ApplyFor(ErrStorage, cause, "write session failed")

	if !errors.Is(err, cause) {
		t.Error("ApplyFor lost cause")
	}

	if !HasTag(err, InternalError) {
		t.Error("ApplyFor lost tags")
	}

	if got := GetUserMessage(err); got != "local storage error" {
		t.Errorf("got user message %q", got)
	}
}
