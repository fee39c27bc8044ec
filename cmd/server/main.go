package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"encoraja/internal/app"
	"encoraja/internal/config"
	"encoraja/internal/server"
	"encoraja/internal/util"
	"encoraja/pkg/storage"
	"encoraja/pkg/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := util.InitLogger(cfg.LogLevel)

	sessionTTL, err := config.ParseDuration(cfg.SessionTTL, 24*time.Hour)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}
	memoryLatency, err := config.ParseDuration(cfg.MemoryLatency, 100*time.Millisecond)
	if err != nil {
		log.Fatalf("failed to parse memory latency: %v", err)
	}

	dataStore, err := store.Open(store.Config{
		DatabaseURL:   cfg.DatabaseURL,
		UseMemory:     cfg.UseMemoryDB,
		MemoryLatency: memoryLatency,
	})
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	uploader, uploadsDir, err := newUploader(cfg)
	if err != nil {
		log.Fatalf("failed to init upload sink: %v", err)
	}

	appCore, err := app.New(app.Config{
		Store:          dataStore,
		Uploader:       uploader,
		JWTSecret:      cfg.JWTSecret,
		SessionTTL:     sessionTTL,
		RedisAddr:      cfg.RedisAddr,
		RedisPassword:  cfg.RedisPassword,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	trustedProxies, err := util.NewTrustedProxies(cfg.TrustedProxyCIDRs)
	if err != nil {
		log.Fatalf("failed to parse trusted proxies: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:                        appCore,
		RedisAddr:                  cfg.RedisAddr,
		RedisPassword:              cfg.RedisPassword,
		RegisterRateLimitPerMinute: cfg.RegisterRateLimitPerMinute,
		LoginRateLimitPerMinute:    cfg.LoginRateLimitPerMinute,
		UploadRateLimitPerMinute:   cfg.UploadRateLimitPerMinute,
		MaxUploadBytes:             cfg.MaxUploadBytes,
		TrustedProxies:             trustedProxies,
		UploadsDir:                 uploadsDir,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
	}
}

// newUploader selects the upload sink. The data-URI sink is meant for
// read-only serverless filesystems and is also the automatic fallback when
// SERVERLESS=1.
func newUploader(cfg config.FileConfig) (storage.Uploader, string, error) {
	driver := cfg.StorageDriver
	if os.Getenv("SERVERLESS") == "1" && driver != config.StorageS3 {
		driver = config.StorageDataURI
	}
	switch driver {
	case config.StorageDataURI:
		return storage.NewDataURIStore(), "", nil
	case config.StorageS3:
		objectStore, err := storage.NewMinioStore(
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioUseSSL,
			0,
		)
		if err != nil {
			return nil, "", err
		}
		return objectStore, "", nil
	default:
		dir := cfg.UploadDir
		if dir == "" {
			dir = "public/uploads"
		}
		diskStore, err := storage.NewDiskStore(dir)
		if err != nil {
			return nil, "", err
		}
		return diskStore, diskStore.BasePath(), nil
	}
}
