package root

import (
	"context"
	"fmt"

	"fightclub/internal/config"
	"fightclub/internal/engine"
	"fightclub/internal/store"
)

func openStore(ctx context.Context) (store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	switch cfg.StoreBackend {
	case "sqlite":
		st, err := store.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		cleanup := func() {
			_ = st.Close()
		}
		return st, cleanup, nil
	default:
		st, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return st, func() {}, nil
	}
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(st), cleanup, nil
}
