package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"reelshare/internal/auth"
	"reelshare/internal/config"
	"reelshare/internal/logging"
	"reelshare/internal/media"
	"reelshare/internal/server"
	"reelshare/internal/store"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config.toml")
	flag.Parse()

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "reelshare-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.NewConfigService(configPath).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logging.Init(logCfg)

	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
	}()

	st, err := store.Open(filepath.Join(cfg.Server.DataDir, "db"))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Err(err).Msg("Failed to close store")
		}
	}()

	jwtManager, err := auth.NewJWTManager(cfg.Server.JWTSecret, cfg.TokenTTL())
	if err != nil {
		return err
	}

	uploader, err := media.New(ctx, cfg.Media)
	if err != nil {
		return err
	}
	if closer, ok := uploader.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	opts := server.Options{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitMax:    cfg.Server.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow(),
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
	}
	if cfg.Media.Backend == config.MediaBackendLocal {
		opts.MediaDir = cfg.Media.LocalDir
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(st, jwtManager, uploader, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.Server.Addr).Str("media", cfg.Media.Backend).Msg("Server is running")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Info().Msg("Server stopped")
	return nil
}
