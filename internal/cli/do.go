package cli

//
// do.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/api"
	"gitlab.com/kabes/go-spm/internal/config"
	"gitlab.com/kabes/go-spm/internal/router"
	"gitlab.com/kabes/go-spm/internal/statedb"
	"gitlab.com/kabes/go-spm/internal/store"
	"gitlab.com/kabes/go-spm/internal/transport"
)

func createInjector(ctx context.Context) do.Injector {
	injector := do.New(
		api.Package,
	)

	do.Provide(injector, store.NewI)
	do.Provide(injector, transport.NewI)
	do.Provide(injector, router.NewGuardI)

	do.ProvideValue[transport.Notifier](injector, transport.NewConsoleNotifier(os.Stderr))
	do.ProvideValue[transport.Navigator](injector, transport.NewConsoleNavigator(os.Stderr))

	logger := log.Ctx(ctx)
	logger.Debug().Msgf("available services: %v", injector.ListProvidedServices())

	return injector
}

// newStorage open the durable state mirror selected by configuration.
func newStorage(ctx context.Context, conf *config.ClientConf) (store.Storage, error) {
	switch conf.Store {
	case "memory":
		return store.NewMemoryStorage(), nil

	case "db":
		sdb := statedb.New()
		if err := sdb.Connect(ctx, conf.StatePath); err != nil {
			return nil, err
		}

		return sdb, nil

	default:
		return store.NewFileStorage(conf.StatePath), nil
	}
}
