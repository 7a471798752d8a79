//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"unicart/internal/domain/account"
	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"
	"unicart/internal/infra/snapshot"
	"unicart/internal/pkg/cache"
	"unicart/internal/pkg/clock"
	"unicart/internal/pkg/config"
	"unicart/internal/usecase/commands"
	"unicart/internal/usecase/queries"
	"unicart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAddressGateway struct{ mock.Mock }

func (m *MockAddressGateway) ListAddresses(ctx context.Context, userID uuid.UUID) ([]account.Address, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).([]account.Address)
	return res, args.Error(1)
}

func (m *MockAddressGateway) ClearDefaultAddresses(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAddressGateway) MarkDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return m.Called(ctx, userID, addressID).Error(0)
}

type MockPaymentMethodGateway struct{ mock.Mock }

func (m *MockPaymentMethodGateway) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]account.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).([]account.PaymentMethod)
	return res, args.Error(1)
}

func (m *MockPaymentMethodGateway) ClearDefaultPaymentMethods(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockPaymentMethodGateway) MarkDefaultPaymentMethod(ctx context.Context, userID, paymentMethodID uuid.UUID) error {
	return m.Called(ctx, userID, paymentMethodID).Error(0)
}

type MockProfileGateway struct{ mock.Mock }

func (m *MockProfileGateway) FindProfile(ctx context.Context, userID uuid.UUID) (account.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(account.Profile), args.Error(1)
}

type MockDeliveryFeeGateway struct{ mock.Mock }

func (m *MockDeliveryFeeGateway) EstimateDeliveryFee(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (cart.Money, error) {
	args := m.Called(ctx, userID, domain)
	return args.Get(0).(cart.Money), args.Error(1)
}

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) SubmitOrder(ctx context.Context, sub checkout.OrderSubmission) (checkout.OrderPlacement, error) {
	args := m.Called(ctx, sub)
	if fn, ok := args.Get(0).(func(checkout.OrderSubmission) checkout.OrderPlacement); ok {
		return fn(sub), args.Error(1)
	}
	return args.Get(0).(checkout.OrderPlacement), args.Error(1)
}

// placedAs answers a submission by placing exactly what was sent.
func placedAs(orderID uuid.UUID, eta time.Time) func(checkout.OrderSubmission) checkout.OrderPlacement {
	return func(sub checkout.OrderSubmission) checkout.OrderPlacement {
		return checkout.OrderPlacement{
			OrderID:           orderID,
			EstimatedDelivery: eta,
			Lines:             sub.Lines,
			Total:             sub.Total,
		}
	}
}

type MockReceiptPublisher struct{ mock.Mock }

func (m *MockReceiptPublisher) PublishOrderPlaced(ctx context.Context, receipt checkout.OrderReceipt) error {
	return m.Called(ctx, receipt).Error(0)
}

var testNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

// env wires the real workspaces, cart queries and account queries over mocked
// backends.
type env struct {
	userID     uuid.UUID
	workspaces *shared.Workspaces
	cache      *cache.Cache
	clock      *clock.MockClock
	addresses  *MockAddressGateway
	methods    *MockPaymentMethodGateway
	profiles   *MockProfileGateway
	fees       *MockDeliveryFeeGateway
	orders     *MockOrderGateway
	receipts   *MockReceiptPublisher

	cartCmds     commands.CartCommands
	accountCmds  commands.AccountCommands
	checkoutCmds commands.CheckoutCommands
	cartQueries  queries.CartQueries
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.NewTestConfig()
	cfg.Cart.PersistDebounce = time.Hour

	e := &env{
		userID:    uuid.New(),
		clock:     clock.NewMockClock(testNow),
		addresses: new(MockAddressGateway),
		methods:   new(MockPaymentMethodGateway),
		profiles:  new(MockProfileGateway),
		fees:      new(MockDeliveryFeeGateway),
		orders:    new(MockOrderGateway),
		receipts:  new(MockReceiptPublisher),
	}
	e.workspaces = shared.NewWorkspaces(snapshot.NewMemoryStore(), cfg, e.clock, logger)
	t.Cleanup(e.workspaces.Close)
	e.cache = cache.New(e.clock, logger)

	e.cartQueries = queries.NewCartQueries(e.workspaces)
	accountQueries := queries.NewAccountQueries(e.cache, e.addresses, e.methods, e.profiles, cfg)

	e.cartCmds = commands.NewCartCommands(e.workspaces)
	e.accountCmds = commands.NewAccountCommands(e.addresses, e.methods, e.cache, logger)
	e.checkoutCmds = commands.NewCheckoutCommands(
		e.workspaces, e.cartQueries, accountQueries,
		e.fees, e.orders, e.receipts, e.clock, logger,
	)
	return e
}

func (e *env) addItem(t *testing.T, domain cart.DomainType, id string, cents int64, qty int) {
	t.Helper()
	err := e.cartCmds.AddItem(context.Background(), e.userID, domain, commands.AddItemInput{
		ID:             id,
		Name:           id,
		UnitPriceCents: cents,
		Quantity:       qty,
	})
	if err != nil {
		t.Fatalf("add %s: %v", id, err)
	}
}
