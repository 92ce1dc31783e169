package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	logpkg "github.com/pranavi39/pawfect/internal/logger"
	"github.com/pranavi39/pawfect/internal/metrics"
	catalogrepo "github.com/pranavi39/pawfect/internal/repository/catalog"
	credentialrepo "github.com/pranavi39/pawfect/internal/repository/credential"
	sessionrepo "github.com/pranavi39/pawfect/internal/repository/session"
	chiTransport "github.com/pranavi39/pawfect/internal/transport/chi"
	healthuc "github.com/pranavi39/pawfect/internal/usecase/health"
	indexuc "github.com/pranavi39/pawfect/internal/usecase/index"
	searchuc "github.com/pranavi39/pawfect/internal/usecase/search"
	sessionuc "github.com/pranavi39/pawfect/internal/usecase/session"
	"github.com/pranavi39/pawfect/internal/version"
	"github.com/pranavi39/pawfect/internal/vsm"
)

func serveCommand(c *cli.Context) error {
	cfg, env, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting pawfect API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("products", cfg.Catalog.ProductsPath),
		zap.String("users", cfg.Catalog.UsersPath),
	)

	metrics.Register()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Both tables are loaded once up front; a missing or malformed file aborts startup.
	catalogs := catalogrepo.New(cfg.Catalog.ProductsPath, logger)
	creds := credentialrepo.New(cfg.Catalog.UsersPath, logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := catalogs.Load(gctx)
		return err
	})
	g.Go(func() error {
		_, err := creds.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	idx := indexuc.New(catalogs, vsm.NewTokenizer(vsm.WithStemming(cfg.Search.Stemming)), logger)
	if err := idx.Init(ctx); err != nil {
		return err
	}

	sessions, err := sessionrepo.Open(time.Duration(cfg.Session.TTLMinutes)*time.Minute, logger)
	if err != nil {
		return err
	}
	defer func() { _ = sessions.Close() }()

	server := chiTransport.NewServer(
		searchuc.New(idx),
		sessionuc.New(sessions, creds, idx),
		idx,
		healthuc.New(idx, sessions),
		cfg.Search.MaxResults,
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})
	server.Routes(r, cfg.Auth.AdminKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go reloadOnHangup(ctx, idx, logger)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// reloadOnHangup re-fits the index on every SIGHUP until ctx is done.
func reloadOnHangup(ctx context.Context, idx *indexuc.Service, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logger.Info("Received SIGHUP, reloading catalog")
			if _, err := idx.Reload(ctx); err != nil {
				logger.Error("Catalog reload failed; keeping previous index", zap.Error(err))
			}
		}
	}
}
