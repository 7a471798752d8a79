package bootstrap

import (
	"context"
	"log/slog"

	"unicart/internal/infra/events"
	"unicart/internal/pkg/config"
	"unicart/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewReceiptPublisher,
	),
)

func NewReceiptPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.ReceiptPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("no kafka brokers configured; order receipts are logged only")
		return events.NewLogPublisher(logger)
	}

	producer := events.NewReceiptProducer(cfg.Kafka, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("closing kafka receipt producer")
			return producer.Close()
		},
	})
	return producer
}

func receiptPublisherKind(cfg config.KafkaConfig) string {
	if len(cfg.Brokers) == 0 {
		return "log"
	}
	return "kafka:" + cfg.ReceiptTopic
}
