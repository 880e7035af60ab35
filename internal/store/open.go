package store

import (
	"context"
	"fmt"

	"github.com/dyluth/fily/internal/config"
	"github.com/dyluth/fily/internal/ledger"
	"github.com/redis/go-redis/v9"
)

// Backend is a ledger store that holds resources until closed.
type Backend interface {
	ledger.Store
	Close() error
}

// Open returns the backend selected by the configuration. The CSV backend is
// bootstrapped so that its three table files exist; the Redis backend is
// pinged before use.
func Open(ctx context.Context, cfg *config.FilyConfig) (Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		rc := cfg.Store.Redis
		s, err := NewRedis(&redis.Options{Addr: rc.Addr, Password: rc.Password, DB: rc.DB}, rc.Namespace)
		if err != nil {
			return nil, err
		}
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", rc.Addr, err)
		}
		return s, nil
	case config.BackendCSV, "":
		s := NewCSV(cfg.DataDir)
		if _, err := s.Bootstrap(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
