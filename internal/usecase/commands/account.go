package commands

import (
	"context"
	"log/slog"

	"unicart/internal/domain/account"
	"unicart/internal/infra"
	"unicart/internal/pkg/cache"
	"unicart/internal/pkg/errs"
	"unicart/internal/usecase/queries"
	"unicart/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrBackendFailure = errs.New("backend request failed")

type AccountCommands interface {
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error
	SetDefaultPaymentMethod(ctx context.Context, userID, paymentMethodID uuid.UUID) error
}

type accountCommandsImpl struct {
	addresses      shared.AddressGateway
	paymentMethods shared.PaymentMethodGateway
	cache          *cache.Cache
	logger         *slog.Logger
}

func NewAccountCommands(
	addresses shared.AddressGateway,
	paymentMethods shared.PaymentMethodGateway,
	c *cache.Cache,
	logger *slog.Logger,
) AccountCommands {
	return &accountCommandsImpl{
		addresses:      addresses,
		paymentMethods: paymentMethods,
		cache:          c,
		logger:         logger,
	}
}

func (uc *accountCommandsImpl) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return setDefault(ctx, uc.logger, defaultFlip[account.Address]{
		kind:     queries.KindAddresses,
		targetID: addressID,
		notFound: account.ErrAddressNotFound,
		list: func(ctx context.Context) ([]account.Address, error) {
			return uc.addresses.ListAddresses(ctx, userID)
		},
		clear: func(ctx context.Context) error {
			return uc.addresses.ClearDefaultAddresses(ctx, userID)
		},
		mark: func(ctx context.Context) error {
			return uc.addresses.MarkDefaultAddress(ctx, userID, addressID)
		},
		invalidate: func() { uc.cache.Invalidate(queries.AddressesKey(userID)) },
	})
}

func (uc *accountCommandsImpl) SetDefaultPaymentMethod(ctx context.Context, userID, paymentMethodID uuid.UUID) error {
	return setDefault(ctx, uc.logger, defaultFlip[account.PaymentMethod]{
		kind:     queries.KindPaymentMethods,
		targetID: paymentMethodID,
		notFound: account.ErrPaymentMethodNotFound,
		list: func(ctx context.Context) ([]account.PaymentMethod, error) {
			return uc.paymentMethods.ListPaymentMethods(ctx, userID)
		},
		clear: func(ctx context.Context) error {
			return uc.paymentMethods.ClearDefaultPaymentMethods(ctx, userID)
		},
		mark: func(ctx context.Context) error {
			return uc.paymentMethods.MarkDefaultPaymentMethod(ctx, userID, paymentMethodID)
		},
		invalidate: func() { uc.cache.Invalidate(queries.PaymentMethodsKey(userID)) },
	})
}

type defaultFlip[T account.Defaultable] struct {
	kind       string
	targetID   uuid.UUID
	notFound   error
	list       func(ctx context.Context) ([]T, error)
	clear      func(ctx context.Context) error
	mark       func(ctx context.Context) error
	invalidate func()
}

// setDefault clears every flag then sets the target's as two separate backend
// calls. Readers tolerate the window in between through account.ResolveDefault.
func setDefault[T account.Defaultable](ctx context.Context, logger *slog.Logger, f defaultFlip[T]) error {
	entries, err := f.list(ctx)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "list %s", f.kind), ErrBackendFailure)
	}
	if _, ok := account.Find(entries, f.targetID); !ok {
		return f.notFound
	}

	// the collection may have changed even if a later step fails
	defer f.invalidate()

	if err := f.clear(ctx); err != nil {
		return errs.Mark(errs.Wrapf(err, "clear default %s", f.kind), ErrBackendFailure)
	}
	if err := f.mark(ctx); err != nil {
		logger.Warn("default cleared but not reassigned",
			"kind", f.kind,
			"target_id", f.targetID.String(),
			"error", err)
		if infra.IsKind(err, infra.KindNotFound) {
			return f.notFound
		}
		return errs.Mark(errs.Wrapf(err, "mark default %s", f.kind), ErrBackendFailure)
	}
	return nil
}
