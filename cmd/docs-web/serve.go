package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joseph082/aws-amplify-docs/internal/content"
	"github.com/joseph082/aws-amplify-docs/internal/handlers"
	mw "github.com/joseph082/aws-amplify-docs/internal/middleware"
	"github.com/joseph082/aws-amplify-docs/internal/observability"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
	"github.com/joseph082/aws-amplify-docs/internal/site"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		addr            string
		assetsDir       string
		defaultPlatform string
		dev             bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the documentation web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("assets") {
				cfg.Content.AssetsDir = assetsDir
			}
			if cmd.Flags().Changed("dev") {
				cfg.Content.Dev = dev
			}
			if cmd.Flags().Changed("default-platform") {
				p, err := platform.Parse(defaultPlatform)
				if err != nil {
					return err
				}
				cfg.Site.DefaultPlatform = p
			}
			listen := cfg.Server.Addr()
			if cmd.Flags().Changed("addr") {
				listen = addr
			}

			logger, err := observability.NewLoggerWithLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = observability.WithLogger(ctx, logger)

			lib, err := site.Open(ctx, cfg.Content.Dir)
			if err != nil {
				return err
			}
			ttl := cfg.Content.CacheTTL
			if cfg.Content.Dev {
				ttl = 0
			}
			store := content.NewStore(content.WithCacheTTL(ttl), content.WithRoot(lib.Root()))

			hs, err := handlers.New(handlers.Deps{
				Tree:            lib,
				Pages:           store,
				SiteName:        cfg.Site.Name,
				BaseURL:         cfg.Site.BaseURL,
				DefaultPlatform: cfg.Site.DefaultPlatform,
			})
			if err != nil {
				return err
			}

			if cfg.Content.Dev {
				go func() {
					if err := lib.Watch(ctx, store.Invalidate); err != nil {
						logger.Error("content watcher stopped", zap.Error(err))
					}
				}()
			}

			srv := &http.Server{
				Addr:              listen,
				Handler:           newRouter(hs, logger, cfg.Content.AssetsDir, cfg.Site.DefaultPlatform),
				ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
				ReadTimeout:       cfg.Server.ReadTimeout,
				WriteTimeout:      cfg.Server.WriteTimeout,
				IdleTimeout:       cfg.Server.IdleTimeout,
			}

			serverLogger := logger.Named("http").With(zap.String("addr", listen))
			errCh := make(chan error, 1)
			go func() {
				serverLogger.Info("docs-web listening",
					zap.Bool("dev", cfg.Content.Dev),
					zap.String("content", lib.Root()),
					zap.Int("pages", lib.Tree().Len()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err, ok := <-errCh:
				if ok {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			logger.Info("shutdown signal received; draining requests")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address (overrides DOCS_WEB_PORT)")
	cmd.Flags().StringVar(&assetsDir, "assets", "public/assets", "static assets directory")
	cmd.Flags().StringVar(&defaultPlatform, "default-platform", string(platform.Default), "platform used when the reader has not picked one")
	cmd.Flags().BoolVar(&dev, "dev", false, "reload content on change and disable the page cache")
	return cmd
}

// newRouter wires middleware and routes. The platform middleware runs before
// the logger so request entries carry the resolved platform.
func newRouter(hs *handlers.Handlers, logger *zap.Logger, assetsDir string, defaultPlatform platform.Platform) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.Platform(defaultPlatform))
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mw.VaryPlatform)

	r.Get("/healthz", hs.Healthz)

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(assetsDir))
	r.Handle("/assets/*", assets)

	r.Get("/api/overview", hs.OverviewAPI)
	r.Get("/*", hs.Page)
	return r
}
