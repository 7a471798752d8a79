package components

import (
	"unicart/internal/infra/repository"
	"unicart/internal/usecase/shared"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewAddressRepository,
			fx.As(new(shared.AddressGateway)),
		),
		fx.Annotate(
			repository.NewPaymentMethodRepository,
			fx.As(new(shared.PaymentMethodGateway)),
		),
		fx.Annotate(
			repository.NewProfileRepository,
			fx.As(new(shared.ProfileGateway)),
		),
		fx.Annotate(
			repository.NewDeliveryFeeRepository,
			fx.As(new(shared.DeliveryFeeGateway)),
		),
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(shared.OrderGateway)),
		),
	),
)
