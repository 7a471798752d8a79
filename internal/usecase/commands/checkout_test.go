//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"unicart/internal/domain/account"
	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"
	"unicart/internal/pkg/errs"
	"unicart/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	*env
	home, work account.Address
	card       account.PaymentMethod
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	e := newEnv(t)
	f := &checkoutFixture{
		env:  e,
		home: account.Address{ID: uuid.New(), Label: "Home", FullAddress: "1 Main St"},
		work: account.Address{ID: uuid.New(), Label: "Work", FullAddress: "2 Side St", IsDefault: true},
		card: account.PaymentMethod{ID: uuid.New(), Kind: account.PaymentCard, IsDefault: true},
	}
	e.addresses.On("ListAddresses", mock.Anything, e.userID).Return([]account.Address{f.home, f.work}, nil).Maybe()
	e.methods.On("ListPaymentMethods", mock.Anything, e.userID).Return([]account.PaymentMethod{f.card}, nil).Maybe()
	e.fees.On("EstimateDeliveryFee", mock.Anything, e.userID, cart.DomainMarket).Return(cart.MustMoney(499), nil).Maybe()
	return f
}

func (f *checkoutFixture) open(t *testing.T) *checkout.View {
	t.Helper()
	res, err := f.checkoutCmds.Open(context.Background(), f.userID, cart.DomainMarket)
	require.NoError(t, err)
	require.NotNil(t, res.Session)
	return res.Session
}

func TestCheckout_OpenEmptyCartRedirects(t *testing.T) {
	e := newEnv(t)

	res, err := e.checkoutCmds.Open(context.Background(), e.userID, cart.DomainGym)

	require.NoError(t, err)
	assert.True(t, res.RedirectToCart)
	assert.Nil(t, res.Session)
	e.fees.AssertNotCalled(t, "EstimateDeliveryFee", mock.Anything, mock.Anything, mock.Anything)

	_, err = e.checkoutCmds.Get(context.Background(), e.userID, cart.DomainGym)
	assert.ErrorIs(t, err, commands.ErrSessionNotFound)
}

func TestCheckout_OpenPreselectsDefaults(t *testing.T) {
	f := newCheckoutFixture(t)
	f.addItem(t, cart.DomainMarket, "apple", 150, 2)

	res, err := f.checkoutCmds.Open(context.Background(), f.userID, cart.DomainMarket)
	require.NoError(t, err)

	assert.True(t, res.Created)
	v := res.Session
	assert.Equal(t, checkout.StatusValidating, v.Status)
	assert.Equal(t, int64(499), v.DeliveryFeeEstimate.Cents())
	require.NotNil(t, v.SelectedAddressID)
	assert.Equal(t, f.work.ID, *v.SelectedAddressID)
	require.NotNil(t, v.SelectedPaymentMethodID)
	assert.Equal(t, f.card.ID, *v.SelectedPaymentMethodID)
	assert.Equal(t, testNow, v.CreatedAt)

	again, err := f.checkoutCmds.Open(context.Background(), f.userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, v.ID, again.Session.ID)
	f.fees.AssertNumberOfCalls(t, "EstimateDeliveryFee", 1)
}

func TestCheckout_OpenWithoutReferenceDataLeavesSelectionEmpty(t *testing.T) {
	e := newEnv(t)
	e.addresses.On("ListAddresses", mock.Anything, e.userID).Return(nil, assert.AnError)
	e.methods.On("ListPaymentMethods", mock.Anything, e.userID).Return(nil, assert.AnError)
	e.fees.On("EstimateDeliveryFee", mock.Anything, e.userID, cart.DomainPharmacy).Return(cart.MustMoney(199), nil)
	e.addItem(t, cart.DomainPharmacy, "aspirin", 500, 1)

	res, err := e.checkoutCmds.Open(context.Background(), e.userID, cart.DomainPharmacy)
	require.NoError(t, err)
	assert.Nil(t, res.Session.SelectedAddressID)
	assert.Nil(t, res.Session.SelectedPaymentMethodID)

	_, err = e.checkoutCmds.Submit(context.Background(), e.userID, cart.DomainPharmacy)
	assert.ErrorIs(t, err, checkout.ErrAddressRequired)

	v, err := e.checkoutCmds.Get(context.Background(), e.userID, cart.DomainPharmacy)
	require.NoError(t, err)
	assert.Equal(t, checkout.StatusValidating, v.Status)
	e.orders.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestCheckout_OpenFeeUnavailable(t *testing.T) {
	e := newEnv(t)
	e.fees.On("EstimateDeliveryFee", mock.Anything, e.userID, cart.DomainRestaurant).Return(cart.Money{}, assert.AnError)
	e.addItem(t, cart.DomainRestaurant, "ramen", 1200, 1)

	_, err := e.checkoutCmds.Open(context.Background(), e.userID, cart.DomainRestaurant)

	assert.True(t, errs.Is(err, commands.ErrDeliveryFeeUnavailable))
	_, err = e.checkoutCmds.Get(context.Background(), e.userID, cart.DomainRestaurant)
	assert.ErrorIs(t, err, commands.ErrSessionNotFound)
}

func TestCheckout_SetAddressMustBelongToUser(t *testing.T) {
	f := newCheckoutFixture(t)
	f.addItem(t, cart.DomainMarket, "apple", 150, 1)
	f.open(t)

	_, err := f.checkoutCmds.SetAddress(context.Background(), f.userID, cart.DomainMarket, uuid.New())
	assert.ErrorIs(t, err, account.ErrAddressNotFound)

	v, err := f.checkoutCmds.SetAddress(context.Background(), f.userID, cart.DomainMarket, f.home.ID)
	require.NoError(t, err)
	assert.Equal(t, f.home.ID, *v.SelectedAddressID)
	assert.Equal(t, int64(499), v.DeliveryFeeEstimate.Cents())
}

func TestCheckout_SubmitSuccessClearsOnlyThatDomain(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.addItem(t, cart.DomainMarket, "apple", 150, 2)
	f.addItem(t, cart.DomainPharmacy, "aspirin", 500, 1)
	f.addItem(t, cart.DomainRestaurant, "ramen", 1200, 3)
	session := f.open(t)

	orderID, eta := uuid.New(), testNow.Add(90*time.Minute)
	f.orders.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(sub checkout.OrderSubmission) bool {
		return sub.IdempotencyKey == session.ID &&
			sub.AddressID == f.work.ID &&
			sub.PaymentMethodID == f.card.ID &&
			len(sub.Lines) == 1 &&
			sub.Subtotal.Cents() == 300 &&
			sub.Total.Cents() == 799
	})).Return(placedAs(orderID, eta), nil).Once()
	f.receipts.On("PublishOrderPlaced", mock.Anything, mock.MatchedBy(func(r checkout.OrderReceipt) bool {
		return r.OrderID == orderID
	})).Return(nil).Once()

	receipt, err := f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)

	assert.Equal(t, orderID, receipt.OrderID)
	assert.Equal(t, int64(799), receipt.Total.Cents())
	assert.False(t, receipt.Replayed)
	assert.Equal(t, eta, receipt.EstimatedDelivery)
	assert.Equal(t, testNow, receipt.PlacedAt)

	market, err := f.cartQueries.ItemsByType(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.Zero(t, market.LineCount)

	pharmacy, err := f.cartQueries.ItemsByType(ctx, f.userID, cart.DomainPharmacy)
	require.NoError(t, err)
	assert.Equal(t, int64(500), pharmacy.TotalPrice.Cents())
	restaurant, err := f.cartQueries.ItemsByType(ctx, f.userID, cart.DomainRestaurant)
	require.NoError(t, err)
	assert.Equal(t, 3, restaurant.ItemCount)

	_, err = f.checkoutCmds.Get(ctx, f.userID, cart.DomainMarket)
	assert.ErrorIs(t, err, commands.ErrSessionNotFound)
	f.orders.AssertExpectations(t)
	f.receipts.AssertExpectations(t)
}

func TestCheckout_SubmitFailureKeepsCartAndAllowsRetry(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.addItem(t, cart.DomainMarket, "apple", 150, 2)
	f.addItem(t, cart.DomainMarket, "milk", 300, 1)
	session := f.open(t)

	before, err := f.cartQueries.ItemsByType(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)

	orderID := uuid.New()
	f.orders.On("SubmitOrder", mock.Anything, mock.Anything).Return(checkout.OrderPlacement{}, assert.AnError).Once()
	f.orders.On("SubmitOrder", mock.Anything, mock.Anything).Return(placedAs(orderID, testNow.Add(time.Hour)), nil).Once()
	f.receipts.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil)

	_, err = f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrSubmissionFailed))

	after, err := f.cartQueries.ItemsByType(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.Equal(t, before.Items, after.Items)

	v, err := f.checkoutCmds.Get(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.Equal(t, checkout.StatusValidating, v.Status, "a failed attempt returns to validating")
	assert.NotEmpty(t, v.LastFailure)
	assert.Equal(t, f.work.ID, *v.SelectedAddressID, "selections survive a failure")
	f.receipts.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)

	receipt, err := f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.Equal(t, orderID, receipt.OrderID)
	assert.Equal(t, before.TotalPrice.Add(cart.MustMoney(499)), receipt.Total)

	require.Len(t, f.orders.Calls, 2)
	for _, call := range f.orders.Calls {
		sub := call.Arguments.Get(1).(checkout.OrderSubmission)
		assert.Equal(t, session.ID, sub.IdempotencyKey)
	}
}

func TestCheckout_RetryAfterCartChangeUsesPlacedOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.addItem(t, cart.DomainMarket, "apple", 150, 2)
	f.open(t)

	// the first attempt commits but the caller only sees the error
	var first checkout.OrderSubmission
	orderID, eta := uuid.New(), testNow.Add(time.Hour)
	f.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { first = args.Get(1).(checkout.OrderSubmission) }).
		Return(checkout.OrderPlacement{}, assert.AnError).Once()
	f.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(func(checkout.OrderSubmission) checkout.OrderPlacement {
			p := placedAs(orderID, eta)(first)
			p.Replayed = true
			return p
		}, nil).Once()
	f.receipts.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)
	require.Error(t, err)

	f.addItem(t, cart.DomainMarket, "bread", 500, 1)
	receipt, err := f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)

	assert.Equal(t, orderID, receipt.OrderID)
	assert.True(t, receipt.Replayed)
	assert.Equal(t, int64(799), receipt.Total.Cents(), "receipt reports the order that was placed")

	market, err := f.cartQueries.ItemsByType(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)
	require.Len(t, market.Items, 1, "lines that were never ordered stay in the cart")
	assert.Equal(t, "bread", market.Items[0].ID)
	assert.Equal(t, 1, market.Items[0].Quantity)
}

func TestCheckout_ItemsAddedDuringSubmissionSurvive(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.addItem(t, cart.DomainMarket, "apple", 150, 2)
	f.open(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(placedAs(uuid.New(), testNow.Add(time.Hour)), nil).Once()
	f.receipts.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)
		done <- err
	}()
	<-started

	f.addItem(t, cart.DomainMarket, "apple", 150, 1)
	f.addItem(t, cart.DomainMarket, "milk", 300, 1)
	close(release)
	require.NoError(t, <-done)

	market, err := f.cartQueries.ItemsByType(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)
	got := map[string]int{}
	for _, it := range market.Items {
		got[it.ID] = it.Quantity
	}
	assert.Equal(t, map[string]int{"apple": 1, "milk": 1}, got)
}

func TestCheckout_SingleSubmissionInFlight(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.addItem(t, cart.DomainMarket, "apple", 150, 1)
	f.open(t)

	started := make(chan struct{})
	release := make(chan struct{})
	placement := checkout.OrderPlacement{OrderID: uuid.New(), EstimatedDelivery: testNow.Add(time.Hour)}
	f.orders.On("SubmitOrder", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(placement, nil).Once()
	f.receipts.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil)

	type result struct {
		receipt *checkout.OrderReceipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		r, err := f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)
		done <- result{r, err}
	}()
	<-started

	_, err := f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)
	assert.ErrorIs(t, err, checkout.ErrSubmissionInProgress)

	_, err = f.checkoutCmds.SetAddress(ctx, f.userID, cart.DomainMarket, f.home.ID)
	assert.ErrorIs(t, err, checkout.ErrSubmissionInProgress)

	v, err := f.checkoutCmds.Get(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.Equal(t, checkout.StatusSubmitting, v.Status)

	close(release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, placement.OrderID, res.receipt.OrderID)
	f.orders.AssertNumberOfCalls(t, "SubmitOrder", 1)
}

func TestCheckout_SubmitSurvivesCallerCancellation(t *testing.T) {
	f := newCheckoutFixture(t)
	f.addItem(t, cart.DomainMarket, "apple", 150, 1)
	f.open(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	placement := checkout.OrderPlacement{OrderID: uuid.New()}
	f.orders.On("SubmitOrder", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(placement, nil).Once()
	f.receipts.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil)

	receipt, err := f.checkoutCmds.Submit(ctx, f.userID, cart.DomainMarket)

	require.NoError(t, err)
	assert.Equal(t, placement.OrderID, receipt.OrderID)
	f.orders.AssertExpectations(t)
}

func TestCheckout_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.addItem(t, cart.DomainMarket, "apple", 150, 1)
	f.open(t)

	f.orders.On("SubmitOrder", mock.Anything, mock.Anything).Return(placedAs(uuid.New(), testNow), nil)
	f.receipts.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := f.checkoutCmds.Submit(context.Background(), f.userID, cart.DomainMarket)
	require.NoError(t, err)

	market, err := f.cartQueries.ItemsByType(context.Background(), f.userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.Zero(t, market.LineCount)
}

func TestCheckout_Abandon(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.addItem(t, cart.DomainMarket, "apple", 150, 1)
	first := f.open(t)

	require.NoError(t, f.checkoutCmds.Abandon(ctx, f.userID, cart.DomainMarket))
	_, err := f.checkoutCmds.Get(ctx, f.userID, cart.DomainMarket)
	assert.ErrorIs(t, err, commands.ErrSessionNotFound)
	assert.ErrorIs(t, f.checkoutCmds.Abandon(ctx, f.userID, cart.DomainMarket), commands.ErrSessionNotFound)

	market, err := f.cartQueries.ItemsByType(ctx, f.userID, cart.DomainMarket)
	require.NoError(t, err)
	assert.Equal(t, 1, market.LineCount, "abandoning keeps the cart")

	second := f.open(t)
	assert.NotEqual(t, first.ID, second.ID)
}
