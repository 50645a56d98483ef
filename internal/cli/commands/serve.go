package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/logging"
	"github.com/ai-stack/stackbuilder/internal/preview"
	"github.com/ai-stack/stackbuilder/internal/server"
	"github.com/ai-stack/stackbuilder/internal/server/ratelimit"
	"github.com/ai-stack/stackbuilder/internal/storage"
)

// NewServeCommand creates the serve command
func NewServeCommand(g *globalOptions) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview API server",
		Long: `Run the HTTP server behind the builder: preview, analysis, catalog,
command and saved-slot endpoints plus the /api/live websocket. Settings come
from ai-stack.yaml, .env and AI_STACK_* variables.

Examples:
  ai-stack serve
  ai-stack serve --port 9000
  AI_STACK_STORAGE_DRIVER=redis ai-stack serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Dev)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			ctx := cmd.Context()
			slot, closeFn, err := storage.Open(ctx, cfg.StorageOptions())
			if err != nil {
				return ui.StorageFailure("open", err)
			}
			closeStorage := sync.OnceValue(closeFn)
			defer closeStorage() //nolint:errcheck

			svc, err := preview.NewService(
				preview.WithCacheSize(cfg.Preview.CacheSize),
				preview.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			limiter, closeLimiter, err := newLimiter(cfg.Server.RateLimit, slot)
			if err != nil {
				return err
			}
			defer closeLimiter() //nolint:errcheck

			handler := preview.NewHandler(svc, preview.Config{
				Debounce:       cfg.Preview.Debounce,
				RequestTimeout: cfg.Server.RequestTimeout,
				CORSOrigins:    cfg.Server.CORSOrigins,
				Storage:        slot,
				RateLimiter:    limiter,
				Logger:         logger,
			})

			srvCfg := server.DefaultConfig(handler.Routes())
			srvCfg.Address = cfg.Address()
			srv, err := server.New(srvCfg)
			if err != nil {
				return err
			}

			shutdownCfg := server.DefaultShutdownConfig()
			shutdownCfg.Logger = logger
			gs := server.NewGracefulShutdown(srv, shutdownCfg)
			gs.RegisterHook(func(context.Context) error {
				return closeStorage()
			})

			logger.Info("starting ai-stack server",
				zap.String("addr", srvCfg.Address),
				zap.String("storage", cfg.Storage.Driver),
				zap.Duration("debounce", cfg.Preview.Debounce),
				zap.Int("rate_limit", cfg.Server.RateLimit),
			)
			return gs.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (default: server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default: server.port)")
	return cmd
}

// newLimiter shares the Redis connection when slots live in Redis so every
// server instance counts against the same window. Other drivers get an
// in-process bucket.
func newLimiter(perMinute int, slot storage.Slot) (ratelimit.Limiter, func() error, error) {
	noop := func() error { return nil }
	if perMinute <= 0 {
		return nil, noop, nil
	}
	if r, ok := slot.(*storage.Redis); ok {
		l, err := ratelimit.NewRedis(r.Client(), perMinute, time.Minute)
		return l, noop, err
	}
	b, err := ratelimit.NewBucket(ratelimit.BucketConfig{
		Limit:           perMinute,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	})
	if err != nil {
		return nil, noop, err
	}
	return b, b.Close, nil
}
