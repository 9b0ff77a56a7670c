package root

import (
	"context"
	"database/sql"

	"github.com/MookeeHugo/kiddo-habit-app/internal/config"
	"github.com/MookeeHugo/kiddo-habit-app/internal/engine"
	"github.com/MookeeHugo/kiddo-habit-app/internal/logger"
	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, *config.Config, func(), error) {
	path := cfgPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := logger.Init(cfg.Logging.Development, cfg.Logging.Path); err != nil {
		return nil, nil, nil, err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
		logger.Sync()
	}
	return db, cfg, cleanup, nil
}

// openService prepares the app for a command: config, db, seed data, and
// the once-per-day rollover sweep every app start performs.
func openService(ctx context.Context) (*engine.Service, func(), error) {
	svc, cleanup, err := openServiceNoSweep(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := svc.RunDailyReset(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// openServiceNoSweep skips the rollover check so the reset command can run
// it itself and report the outcome.
func openServiceNoSweep(ctx context.Context) (*engine.Service, func(), error) {
	db, _, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}

	svc := engine.NewService(db)
	if err := svc.EnsureSeeded(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
