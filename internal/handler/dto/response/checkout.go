package response

import (
	"time"

	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"
	"unicart/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutSessionResponse struct {
	ID                      uuid.UUID       `json:"id"`
	DomainType              cart.DomainType `json:"domainType"`
	Status                  checkout.Status `json:"status"`
	SelectedAddressID       *uuid.UUID      `json:"selectedAddressId,omitempty"`
	SelectedPaymentMethodID *uuid.UUID      `json:"selectedPaymentMethodId,omitempty"`
	DeliveryFeeEstimate     int64           `json:"deliveryFeeEstimate"`
	LastFailure             string          `json:"lastFailure,omitempty"`
	Attempts                int             `json:"attempts"`
	CreatedAt               time.Time       `json:"createdAt"`
}

type OpenCheckoutResponse struct {
	RedirectToCart bool                     `json:"redirectToCart"`
	Session        *CheckoutSessionResponse `json:"session,omitempty"`
}

type OrderReceiptResponse struct {
	OrderID           uuid.UUID       `json:"orderId"`
	DomainType        cart.DomainType `json:"domainType"`
	Total             int64           `json:"total"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	Replayed          bool            `json:"replayed,omitempty"`
	PlacedAt          time.Time       `json:"placedAt"`
}

func FromCheckoutView(v *checkout.View) *CheckoutSessionResponse {
	return &CheckoutSessionResponse{
		ID:                      v.ID,
		DomainType:              v.DomainType,
		Status:                  v.Status,
		SelectedAddressID:       v.SelectedAddressID,
		SelectedPaymentMethodID: v.SelectedPaymentMethodID,
		DeliveryFeeEstimate:     v.DeliveryFeeEstimate.Cents(),
		LastFailure:             v.LastFailure,
		Attempts:                v.Attempts,
		CreatedAt:               v.CreatedAt,
	}
}

func FromOpenResult(r *commands.OpenResult) *OpenCheckoutResponse {
	res := &OpenCheckoutResponse{RedirectToCart: r.RedirectToCart}
	if r.Session != nil {
		res.Session = FromCheckoutView(r.Session)
	}
	return res
}

func FromOrderReceipt(r *checkout.OrderReceipt) *OrderReceiptResponse {
	return &OrderReceiptResponse{
		OrderID:           r.OrderID,
		DomainType:        r.DomainType,
		Total:             r.Total.Cents(),
		EstimatedDelivery: r.EstimatedDelivery,
		Replayed:          r.Replayed,
		PlacedAt:          r.PlacedAt,
	}
}
