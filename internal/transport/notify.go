package transport

//
// notify.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"fmt"
	"io"
)

// Notifier receive the user-visible message of every failed call.
type Notifier interface {
	Notify(message string)
}

type consoleNotifier struct {
	out io.Writer
}

func NewConsoleNotifier(out io.Writer) Notifier {
	return &consoleNotifier{out: out}
}

func (c *consoleNotifier) Notify(message string) {
	fmt.Fprintf(c.out, "!! %s\n", message)
}
