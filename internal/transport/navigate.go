package transport

//
// navigate.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"fmt"
	"io"
	"time"
)

// Navigator receive redirect intents from the dispatcher. The redirect is
// a value handed to the environment, not a side effect performed here, so
// the dispatcher stays testable without a real navigation target.
type Navigator interface {
	// ScheduleRedirect request navigation to target after delay.
	// Fire-and-forget: no cancellation, no deduplication.
	ScheduleRedirect(target string, delay time.Duration)
}

type consoleNavigator struct {
	out io.Writer
}

// NewConsoleNavigator announce the redirect target on out after the delay
// elapses; with a terminal instead of a browser there is nothing to
// navigate, the user re-enters through `spm login`.
func NewConsoleNavigator(out io.Writer) Navigator {
	return &consoleNavigator{out: out}
}

func (c *consoleNavigator) ScheduleRedirect(target string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		fmt.Fprintf(c.out, ">> redirected to %s; run `spm login`\n", target)
	})
}
