package root

import (
	"context"
	"os"

	"go.uber.org/zap"

	"keyquest/internal/engine"
	"keyquest/internal/storage"
)

// newLogger is quiet by default; set KEYQUEST_DEBUG=1 for console debug
// output.
func newLogger() *zap.Logger {
	if os.Getenv("KEYQUEST_DEBUG") == "" {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	log := newLogger()
	svc, err := engine.NewService(ctx, store, log)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	cleanup := func() {
		_ = log.Sync()
		_ = store.Close()
	}
	return svc, cleanup, nil
}
