package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-signupform/internal/config"
	"github.com/goliatone/go-signupform/internal/logger"
	"github.com/goliatone/go-signupform/internal/metrics"
	"github.com/goliatone/go-signupform/internal/server"
	"github.com/goliatone/go-signupform/pkg/form"
	"github.com/goliatone/go-signupform/pkg/formdef"
	"github.com/goliatone/go-signupform/pkg/orchestrator"
	"github.com/goliatone/go-signupform/pkg/registration"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	selector, err := orchestrator.NewManifestSelector(orchestrator.DefaultManifest())
	if err != nil {
		log.Error("theme", "err", err)
		os.Exit(1)
	}
	options := []orchestrator.Option{
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithTheme(cfg.Theme, cfg.ThemeVariant),
	}
	if cfg.DefinitionPath != "" {
		def, err := formdef.LoadFile(cfg.DefinitionPath)
		if err != nil {
			log.Error("definition", "path", cfg.DefinitionPath, "err", err)
			os.Exit(1)
		}
		options = append(options, orchestrator.WithDefinition(def))
	}

	serverOptions := []server.Option{
		server.WithOrchestrator(orchestrator.New(options...)),
		server.WithStore(server.NewStore(cfg.SessionTTL)),
		server.WithMetrics(metrics.New()),
		server.WithLogger(log),
		server.WithAllowedOrigins(cfg.AllowedOrigins...),
		server.WithLocale(cfg.Locale),
	}
	if cfg.DefinitionPath == "" {
		serverOptions = append(serverOptions, server.WithSubmitHandler(logRegistration(log)))
	}

	srv, err := server.New(ctx, serverOptions...)
	if err != nil {
		log.Error("server", "err", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}

// logRegistration records accepted sign-ups of the built-in registration
// definition. Credentials and contact details stay out of the log.
func logRegistration(log *slog.Logger) server.SubmitHandler {
	return func(ctx context.Context, snapshot form.Snapshot) error {
		record, err := registration.FromSnapshot(snapshot)
		if err != nil {
			return err
		}
		attrs := []any{"username", record.Username, "gender", record.Gender}
		if record.Age != nil {
			attrs = append(attrs, "age", *record.Age)
		}
		log.InfoContext(ctx, "registration accepted", attrs...)
		return nil
	}
}
