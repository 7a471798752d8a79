package shared

import (
	"context"

	"unicart/internal/domain/account"
	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"

	"github.com/google/uuid"
)

type AddressGateway interface {
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]account.Address, error)
	ClearDefaultAddresses(ctx context.Context, userID uuid.UUID) error
	MarkDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

type PaymentMethodGateway interface {
	ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]account.PaymentMethod, error)
	ClearDefaultPaymentMethods(ctx context.Context, userID uuid.UUID) error
	MarkDefaultPaymentMethod(ctx context.Context, userID, paymentMethodID uuid.UUID) error
}

type ProfileGateway interface {
	FindProfile(ctx context.Context, userID uuid.UUID) (account.Profile, error)
}

// OrderGateway must treat OrderSubmission.IdempotencyKey as a dedupe key:
// resubmitting the same key returns the original placement, with the lines
// and total of that first order and Replayed set.
type OrderGateway interface {
	SubmitOrder(ctx context.Context, sub checkout.OrderSubmission) (checkout.OrderPlacement, error)
}

type DeliveryFeeGateway interface {
	EstimateDeliveryFee(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (cart.Money, error)
}

// CartSnapshotStore persists one serialized cart per (user, domain).
// Load returns nil data and no error when nothing is stored.
type CartSnapshotStore interface {
	Load(ctx context.Context, userID uuid.UUID, domain cart.DomainType) ([]byte, error)
	Save(ctx context.Context, userID uuid.UUID, domain cart.DomainType, data []byte) error
}

type ReceiptPublisher interface {
	PublishOrderPlaced(ctx context.Context, receipt checkout.OrderReceipt) error
}
