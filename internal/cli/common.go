package cli

//
// common.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"

	"gitlab.com/kabes/go-spm/internal/aerr"
	"gitlab.com/kabes/go-spm/internal/config"
	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/router"
	"gitlab.com/kabes/go-spm/internal/statedb"
	"gitlab.com/kabes/go-spm/internal/store"
	"gitlab.com/kabes/go-spm/internal/transport"
)

func wrap(
	cmdfunc func(ctx context.Context, clicmd *cli.Command, i do.Injector) error,
) func(ctx context.Context, clicmd *cli.Command) error {
	return func(ctx context.Context, clicmd *cli.Command) error {
		initializeLogger(clicmd.String("log.level"), clicmd.String("log.format"))

		ctx = log.Logger.WithContext(ctx)

		conf := config.ClientConf{
			BaseURL:   clicmd.String("base-url"),
			Timeout:   clicmd.Duration("timeout"),
			StatePath: clicmd.String("state"),
			Store:     clicmd.String("store"),
		}

		if err := conf.Validate(); err != nil {
			return aerr.Wrapf(err, "invalid configuration")
		}

		injector := createInjector(ctx)
		do.ProvideValue(injector, conf)
		do.ProvideValue(injector, transport.Configuration{
			BaseURL: conf.BaseURL,
			Timeout: conf.Timeout,
		})

		storage, err := newStorage(ctx, &conf)
		if err != nil {
			return aerr.Wrapf(err, "open state storage failed")
		}

		do.ProvideValue(injector, storage)

		if sdb, ok := storage.(*statedb.StateDB); ok {
			defer sdb.Shutdown(ctx) //nolint:errcheck
		}

		return cmdfunc(ctx, clicmd, injector)
	}
}

// guarded run the navigation guard for target before the command body, the
// way the original client guards every route transition. A redirect
// decision aborts the command.
func guarded(i do.Injector, target string) error {
	guard := do.MustInvoke[*router.Guard](i)

	decision := guard.Evaluate(target)
	if decision.Allowed {
		return nil
	}

	err := aerr.Newf("navigation to %q denied", target).WithTag(aerr.AuthError)

	switch decision.To {
	case router.Login:
		if decision.ReturnTo != "" {
			return err.WithUserMsg("please login first (spm login); you will land back on %s", decision.ReturnTo)
		}

		return err.WithUserMsg("please login first (spm login)")

	case router.CourseJoin:
		return err.WithUserMsg("no course selected; join one first (spm course join)")

	default:
		return err.WithUserMsg("not allowed for your role; your pages start at %s", decision.To)
	}
}

// routeFor pick the student or the teacher variant of a page depending on
// the current session; unauthenticated users get the student variant and
// fail the auth check anyway.
func routeFor(i do.Injector, studentPath, teacherPath string) string {
	sstore := do.MustInvoke[*store.SessionStore](i)

	if sess := sstore.Hydrate(); sess != nil && sess.Identity.Role == model.RoleTeacher {
		return teacherPath
	}

	return studentPath
}
