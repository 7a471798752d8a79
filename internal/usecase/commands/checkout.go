package commands

import (
	"context"
	"log/slog"

	"unicart/internal/domain/account"
	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"
	"unicart/internal/pkg/clock"
	"unicart/internal/pkg/errs"
	"unicart/internal/usecase/queries"
	"unicart/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound        = errs.New("checkout session not found")
	ErrSubmissionFailed       = errs.New("order submission failed")
	ErrDeliveryFeeUnavailable = errs.New("delivery fee estimate unavailable")
)

type OpenResult struct {
	// RedirectToCart is set when the domain's cart is empty. No session is
	// created in that case.
	RedirectToCart bool
	Session        *checkout.View
	Created        bool
}

type CheckoutCommands interface {
	Open(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (*OpenResult, error)
	Get(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (*checkout.View, error)
	SetAddress(ctx context.Context, userID uuid.UUID, domain cart.DomainType, addressID uuid.UUID) (*checkout.View, error)
	SetPaymentMethod(ctx context.Context, userID uuid.UUID, domain cart.DomainType, paymentMethodID uuid.UUID) (*checkout.View, error)
	Submit(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (*checkout.OrderReceipt, error)
	Abandon(ctx context.Context, userID uuid.UUID, domain cart.DomainType) error
}

type checkoutCommandsImpl struct {
	workspaces *shared.Workspaces
	carts      queries.CartQueries
	account    queries.AccountQueries
	fees       shared.DeliveryFeeGateway
	orders     shared.OrderGateway
	receipts   shared.ReceiptPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCheckoutCommands(
	workspaces *shared.Workspaces,
	carts queries.CartQueries,
	accountQueries queries.AccountQueries,
	fees shared.DeliveryFeeGateway,
	orders shared.OrderGateway,
	receipts shared.ReceiptPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		workspaces: workspaces,
		carts:      carts,
		account:    accountQueries,
		fees:       fees,
		orders:     orders,
		receipts:   receipts,
		clock:      clk,
		logger:     logger,
	}
}

func (uc *checkoutCommandsImpl) Open(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (*OpenResult, error) {
	items, err := uc.carts.ItemsByType(ctx, userID, domain)
	if err != nil {
		return nil, err
	}
	if items.LineCount == 0 {
		return &OpenResult{RedirectToCart: true}, nil
	}

	if existing, ok := uc.workspaces.Session(userID, domain); ok {
		v := existing.View()
		return &OpenResult{Session: &v}, nil
	}

	fee, err := uc.fees.EstimateDeliveryFee(ctx, userID, domain)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "estimate delivery fee"), ErrDeliveryFeeUnavailable)
	}

	sess, err := checkout.NewSession(userID, domain, fee, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	addressID, paymentMethodID := uc.defaultSelections(ctx, userID)
	if err := sess.BeginValidation(addressID, paymentMethodID); err != nil {
		return nil, err
	}

	sess, created := uc.workspaces.PutSessionIfAbsent(userID, sess)
	v := sess.View()
	return &OpenResult{Session: &v, Created: created}, nil
}

func (uc *checkoutCommandsImpl) Get(_ context.Context, userID uuid.UUID, domain cart.DomainType) (*checkout.View, error) {
	sess, ok := uc.workspaces.Session(userID, domain)
	if !ok {
		return nil, ErrSessionNotFound
	}
	v := sess.View()
	return &v, nil
}

func (uc *checkoutCommandsImpl) SetAddress(ctx context.Context, userID uuid.UUID, domain cart.DomainType, addressID uuid.UUID) (*checkout.View, error) {
	sess, ok := uc.workspaces.Session(userID, domain)
	if !ok {
		return nil, ErrSessionNotFound
	}
	addresses, err := uc.account.Addresses(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, found := account.Find(addresses.Addresses, addressID); !found {
		return nil, account.ErrAddressNotFound
	}
	// the delivery fee estimate is kept from session creation
	if err := sess.SelectAddress(addressID); err != nil {
		return nil, err
	}
	v := sess.View()
	return &v, nil
}

func (uc *checkoutCommandsImpl) SetPaymentMethod(ctx context.Context, userID uuid.UUID, domain cart.DomainType, paymentMethodID uuid.UUID) (*checkout.View, error) {
	sess, ok := uc.workspaces.Session(userID, domain)
	if !ok {
		return nil, ErrSessionNotFound
	}
	methods, err := uc.account.PaymentMethods(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, found := account.Find(methods.PaymentMethods, paymentMethodID); !found {
		return nil, account.ErrPaymentMethodNotFound
	}
	if err := sess.SelectPaymentMethod(paymentMethodID); err != nil {
		return nil, err
	}
	v := sess.View()
	return &v, nil
}

// Submit places the order for the session's domain. Once accepted the call is
// detached from ctx cancellation so the outcome is always applied. On success
// the placed lines are removed from the domain cart and the receipt reports
// what the backend holds. On failure the cart is left untouched.
func (uc *checkoutCommandsImpl) Submit(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (*checkout.OrderReceipt, error) {
	sess, ok := uc.workspaces.Session(userID, domain)
	if !ok {
		return nil, ErrSessionNotFound
	}
	view, err := sess.BeginSubmit()
	if err != nil {
		return nil, err
	}

	store, err := uc.workspaces.Store(ctx, userID, domain)
	if err != nil {
		_ = sess.Fail(err.Error())
		return nil, err
	}
	sub, err := checkout.NewOrderSubmission(view, store.Items())
	if err != nil {
		_ = sess.Fail(err.Error())
		return nil, err
	}

	submitCtx := context.WithoutCancel(ctx)
	placement, err := uc.orders.SubmitOrder(submitCtx, sub)
	if err != nil {
		_ = sess.Fail(ErrSubmissionFailed.Error())
		uc.logger.Warn("order submission failed",
			"session_id", view.ID.String(),
			"domain", string(domain),
			"attempt", view.Attempts,
			"error", err)
		return nil, errs.Mark(errs.Wrap(err, "submit order"), ErrSubmissionFailed)
	}

	if err := sess.Succeed(); err != nil {
		uc.logger.Error("checkout session left submitting state unexpectedly",
			"session_id", view.ID.String(),
			"error", err)
	}
	if placement.Replayed && placement.Total != sub.Total {
		uc.logger.Warn("submission replayed an earlier order with different contents",
			"session_id", view.ID.String(),
			"order_id", placement.OrderID.String(),
			"placed_total_cents", placement.Total.Cents(),
			"submitted_total_cents", sub.Total.Cents())
	}
	// only what was placed leaves the cart; lines added meanwhile stay
	store.Deduct(placement.Quantities())

	receipt := checkout.NewOrderReceipt(sub, placement, uc.clock.Now())
	if err := uc.receipts.PublishOrderPlaced(submitCtx, receipt); err != nil {
		uc.logger.Warn("failed to publish order receipt",
			"order_id", receipt.OrderID.String(),
			"error", err)
	}
	uc.workspaces.DropSession(userID, domain, view.ID)

	uc.logger.Info("order placed",
		"order_id", receipt.OrderID.String(),
		"domain", string(domain),
		"total_cents", receipt.Total.Cents())
	return &receipt, nil
}

// Abandon discards the session. A submission already in flight still
// completes and applies its result.
func (uc *checkoutCommandsImpl) Abandon(_ context.Context, userID uuid.UUID, domain cart.DomainType) error {
	sess, ok := uc.workspaces.Session(userID, domain)
	if !ok {
		return ErrSessionNotFound
	}
	if sess.Status() == checkout.StatusSubmitting {
		uc.logger.Info("checkout abandoned while submitting",
			"session_id", sess.ID().String(),
			"domain", string(domain))
	}
	uc.workspaces.DropSession(userID, domain, sess.ID())
	return nil
}

// defaultSelections pre-selects the user's default address and payment method.
// Reference data failures leave the selection empty for the user to fill in.
func (uc *checkoutCommandsImpl) defaultSelections(ctx context.Context, userID uuid.UUID) (addressID, paymentMethodID *uuid.UUID) {
	if addresses, err := uc.account.Addresses(ctx, userID); err != nil {
		uc.logger.Warn("could not preselect default address", "user_id", userID.String(), "error", err)
	} else {
		addressID = addresses.DefaultID
	}

	if methods, err := uc.account.PaymentMethods(ctx, userID); err != nil {
		uc.logger.Warn("could not preselect default payment method", "user_id", userID.String(), "error", err)
	} else {
		paymentMethodID = methods.DefaultID
	}
	return addressID, paymentMethodID
}
