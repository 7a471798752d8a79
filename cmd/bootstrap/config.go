package bootstrap

import (
	"log/slog"

	"unicart/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logRuntimeConfig),
)

func logRuntimeConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("runtime configuration",
		"cart_store_backend", cfg.Cart.StoreBackend,
		"cart_persist_debounce", cfg.Cart.PersistDebounce,
		"cache_collection_ttl", cfg.Cache.CollectionTTL,
		"cache_profile_ttl", cfg.Cache.ProfileTTL,
		"receipt_publisher", receiptPublisherKind(cfg.Kafka),
	)
}
