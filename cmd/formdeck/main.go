package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/formdeck/formdeck/internal/config"
	"github.com/formdeck/formdeck/internal/server"
	"github.com/formdeck/formdeck/internal/store"
	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/renderers/tui"
	"github.com/formdeck/formdeck/pkg/renderers/vanilla"
	"github.com/formdeck/formdeck/pkg/schema"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	theme, err := render.SelectTheme(cfg.Theme, cfg.ThemeVariant)
	if err != nil {
		logger.Warn("theme not found, pages render unthemed",
			zap.String("theme", cfg.Theme),
			zap.Error(err),
		)
	}

	var rendererOpts []vanilla.Option
	if cfg.TemplatesDir != "" {
		rendererOpts = append(rendererOpts, vanilla.WithTemplatesDir(cfg.TemplatesDir))
	}
	html, err := vanilla.New(rendererOpts...)
	if err != nil {
		logger.Fatal("renderer init failed", zap.Error(err))
	}

	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(tui.New())

	resolved, err := registry.Get(cfg.Renderer)
	if err != nil {
		logger.Fatal("unknown renderer",
			zap.String("renderer", cfg.Renderer),
			zap.Strings("available", registry.List()),
		)
	}
	pages, ok := resolved.(render.PageRenderer)
	if !ok {
		logger.Fatal("renderer cannot serve browser pages",
			zap.String("renderer", cfg.Renderer),
		)
	}

	st := store.New(schema.EmployeeOnboarding())

	srv := server.New(st, pages,
		server.WithAddr(cfg.Addr),
		server.WithLogger(logger),
		server.WithTheme(theme),
		server.WithPageSize(cfg.PageSize),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
