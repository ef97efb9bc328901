// logging.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
package cli

import (
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gitlab.com/kabes/go-spm/internal/aerr"
)

// initializeLogger set log level and format.
func initializeLogger(level, format string) {
	zerolog.ErrorMarshalFunc = aerr.ErrorMarshalFunc //nolint:reassign

	var llog zerolog.Logger

	switch format {
	case "json":
		llog = log.Logger

	default:
		if format != "" && format != "console" {
			log.Error().Msgf("logger: unknown log format %q; using console", format)
		}

		console := outputIsConsole()

		// log full datetime when log is written to file; skip date on console.
		tformat := time.RFC3339
		if console {
			tformat = time.TimeOnly
		}

		llog = log.Output(zerolog.ConsoleWriter{ //nolint:exhaustruct
			Out:        os.Stderr,
			NoColor:    !console,
			TimeFormat: tformat,
		})
	}

	if l, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(l)
	} else {
		log.Error().Msgf("logger: unknown log level %q; using debug", level)
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = llog.With().Timestamp().Logger()

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)
}

func outputIsConsole() bool {
	fileInfo, _ := os.Stderr.Stat()

	return fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0
}
