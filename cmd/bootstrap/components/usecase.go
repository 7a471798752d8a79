package components

import (
	"context"
	"log/slog"
	"time"

	"unicart/internal/pkg/cache"
	"unicart/internal/pkg/clock"
	"unicart/internal/pkg/config"
	"unicart/internal/usecase/commands"
	"unicart/internal/usecase/queries"
	"unicart/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Options(
	fx.Provide(
		clock.NewRealClock,
		cache.New,
		NewWorkspaces,
	),
	fx.Invoke(StartJanitor),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartCommands,
		commands.NewAccountCommands,
		commands.NewCheckoutCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
		queries.NewAccountQueries,
	),
)

// NewWorkspaces flushes debounced cart writes on shutdown, before the
// snapshot backend is closed.
func NewWorkspaces(lc fx.Lifecycle, snapshots shared.CartSnapshotStore, cfg config.Config, clk clock.Clock, logger *slog.Logger) *shared.Workspaces {
	ws := shared.NewWorkspaces(snapshots, cfg, clk, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("flushing pending cart writes")
			ws.Close()
			return nil
		},
	})
	return ws
}

// StartJanitor periodically drops idle cart workspaces and long-expired cache
// entries so per-user state does not outlive its users.
func StartJanitor(lc fx.Lifecycle, c *cache.Cache, ws *shared.Workspaces, cfg config.Config, logger *slog.Logger) {
	interval := cfg.Cache.SweepInterval
	if interval <= 0 {
		logger.Info("janitor disabled")
		return
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(stopped)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						swept := c.Sweep(cfg.Cache.StaleRetention)
						evicted := ws.EvictIdle(cfg.Cart.IdleEviction)
						if swept > 0 || evicted > 0 {
							logger.Debug("janitor pass", "cache_entries_swept", swept, "workspaces_evicted", evicted)
						}
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			select {
			case <-stopped:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
