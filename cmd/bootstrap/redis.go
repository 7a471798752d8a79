package bootstrap

import (
	"context"
	"log/slog"

	"unicart/internal/infra/snapshot"
	"unicart/internal/pkg/config"
	"unicart/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var SnapshotModule = fx.Module("snapshot",
	fx.Provide(
		NewCartSnapshotStore,
	),
)

// NewCartSnapshotStore picks the cart persistence backend from
// CART_STORE_BACKEND.
func NewCartSnapshotStore(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) (shared.CartSnapshotStore, error) {
	switch cfg.Cart.StoreBackend {
	case config.CartStorePostgres:
		logger.Info("cart snapshots stored in postgres")
		return snapshot.NewPostgresStore(pool), nil
	case config.CartStoreMemory:
		logger.Warn("cart snapshots kept in memory; carts are lost on restart")
		return snapshot.NewMemoryStore(), nil
	default:
		client := snapshot.NewRedisClient(cfg.Redis)
		store := snapshot.NewRedisStore(client)
		if err := store.Ping(context.Background()); err != nil {
			_ = client.Close()
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				logger.Info("closing redis client")
				return client.Close()
			},
		})
		logger.Info("cart snapshots stored in redis", "addr", cfg.Redis.Addr)
		return store, nil
	}
}
