package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/memohai/ssmcontacts/internal/boot"
	"github.com/memohai/ssmcontacts/internal/config"
	"github.com/memohai/ssmcontacts/internal/contacts"
	"github.com/memohai/ssmcontacts/internal/handlers"
	"github.com/memohai/ssmcontacts/internal/logger"
	"github.com/memohai/ssmcontacts/internal/metrics"
	"github.com/memohai/ssmcontacts/internal/seed"
	"github.com/memohai/ssmcontacts/internal/server"
	"github.com/memohai/ssmcontacts/internal/version"
)

type configFile string

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the emulator HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := newApp(configFile(configPath))
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func newApp(path configFile, opts ...fx.Option) *fx.App {
	base := []fx.Option{
		fx.Supply(path),
		fx.Provide(
			provideConfig,
			provideLogger,
			contacts.NewRegistry,
			metrics.New,

			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(handlers.NewContactsHandler),
			provideServerHandler(handlers.NewMetricsHandler),

			provideServer,
		),
		fx.Invoke(
			loadSeed,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	}
	return fx.New(append(base, opts...)...)
}

func provideConfig(path configFile) (config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return boot.ApplyEnv(cfg, os.Getenv)
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

type serverParams struct {
	fx.In

	Logger   *slog.Logger
	Config   config.Config
	Handlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, server.Options{
		Addr:      params.Config.Server.Addr,
		RateLimit: params.Config.Server.RateLimit,
	}, params.Handlers...)
}

// loadSeed preloads the configured fixture into the backend it targets.
func loadSeed(log *slog.Logger, cfg config.Config, registry *contacts.Registry) error {
	if cfg.Emulator.SeedFile == "" {
		return nil
	}
	f, err := seed.Load(cfg.Emulator.SeedFile)
	if err != nil {
		return err
	}
	accountID, region := seedScope(cfg, f)
	stats, err := seed.Apply(registry.Backend(accountID, region), f)
	if err != nil {
		return fmt.Errorf("apply seed %s: %w", cfg.Emulator.SeedFile, err)
	}
	log.Info("seed loaded",
		slog.String("file", cfg.Emulator.SeedFile),
		slog.String("account_id", accountID),
		slog.String("region", region),
		slog.Int("contacts", stats.Contacts),
		slog.Int("channels", stats.Channels),
	)
	return nil
}

func seedScope(cfg config.Config, f seed.File) (string, string) {
	accountID, region := cfg.Emulator.AccountID, cfg.Emulator.DefaultRegion
	if f.AccountID != "" {
		accountID = f.AccountID
	}
	if f.Region != "" {
		region = f.Region
	}
	return accountID, region
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, registry *contacts.Registry, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("starting ssm-contacts", slog.String("version", version.GetInfo()))
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			defer registry.Reset()
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
