package store

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config selects and configures a storage backend.
type Config struct {
	// DatabaseURL is the Postgres DSN for the relational backend.
	DatabaseURL string
	// UseMemory forces the in-memory fallback regardless of DatabaseURL.
	UseMemory bool
	// MemoryLatency is the simulated per-operation delay of the fallback.
	MemoryLatency time.Duration
}

// Open picks a backend once at startup. The in-memory fallback is chosen
// when explicitly requested, when SERVERLESS=1 marks a read-only deployment,
// or when no database URL is configured. The returned Store is meant to be
// passed to the application explicitly; there is no package-level instance.
func Open(cfg Config) (Store, error) {
	if cfg.UseMemory || serverlessEnv() || strings.TrimSpace(cfg.DatabaseURL) == "" {
		slog.Info("using in-memory store", "latency", cfg.MemoryLatency.String())
		return NewMemoryStoreWithLatency(cfg.MemoryLatency), nil
	}
	s, err := NewGormStore(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("init postgres store: %w", err)
	}
	slog.Info("using postgres store")
	return s, nil
}

func serverlessEnv() bool {
	return os.Getenv("SERVERLESS") == "1"
}
