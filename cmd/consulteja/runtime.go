package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/config"
	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/search"
)

// runtime bundles the services a command needs.
type runtime struct {
	cfg    config.Config
	chain  *provider.Chain
	svc    *search.Service
	stores *search.Stores // nil when storage could not be opened
}

// openRuntime builds the provider chain and opens storage. A storage failure
// is logged and leaves the runtime without history or preferences, so
// lookups keep working.
func openRuntime(ctx context.Context, cfg config.Config, lg *zap.Logger, record bool) (*runtime, error) {
	chain, err := search.NewChain(cfg, lg)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, chain: chain}

	stores, err := search.OpenStores(ctx, cfg)
	if err != nil {
		lg.Warn("Storage unavailable, history and preferences disabled", zap.Error(err))
	} else {
		rt.stores = stores
	}

	opts := []search.Option{
		search.WithTimeout(cfg.Timeout),
		search.WithLogger(lg.Named("search")),
	}
	if record && rt.stores != nil {
		opts = append(opts, search.WithHistory(rt.stores.History))
	}
	rt.svc = search.NewService(chain, opts...)
	return rt, nil
}

func (rt *runtime) history() history.Repository {
	if rt.stores == nil {
		return nil
	}
	return rt.stores.History
}

func (rt *runtime) prefs() prefs.Repository {
	if rt.stores == nil {
		return nil
	}
	return rt.stores.Prefs
}

func (rt *runtime) Close() {
	if rt.stores != nil {
		_ = rt.stores.Close()
	}
}

// openStores opens storage for commands that cannot work without it.
func openStores(ctx context.Context, cfg config.Config) *search.Stores {
	stores, err := search.OpenStores(ctx, cfg)
	if err != nil {
		fatalf("%v", err)
	}
	return stores
}

func mustConfig(path string) config.Config {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFiles(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fatalf("%v", err)
	}
	return cfg
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(2)
}
