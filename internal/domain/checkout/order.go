package checkout

import (
	"errors"
	"time"

	"unicart/internal/domain/cart"

	"github.com/google/uuid"
)

var ErrEmptyOrder = errors.New("order has no items")

type OrderLine struct {
	ItemID    string
	Name      string
	Quantity  int
	UnitPrice cart.Money
}

// OrderSubmission is what the order endpoint receives. IdempotencyKey is the
// session id, so a retried attempt of the same session cannot place two orders.
type OrderSubmission struct {
	IdempotencyKey  uuid.UUID
	UserID          uuid.UUID
	DomainType      cart.DomainType
	AddressID       uuid.UUID
	PaymentMethodID uuid.UUID
	Lines           []OrderLine
	Subtotal        cart.Money
	DeliveryFee     cart.Money
	Total           cart.Money
}

func NewOrderSubmission(v View, items []cart.Item) (OrderSubmission, error) {
	if len(items) == 0 {
		return OrderSubmission{}, ErrEmptyOrder
	}
	if v.SelectedAddressID == nil {
		return OrderSubmission{}, ErrAddressRequired
	}
	if v.SelectedPaymentMethodID == nil {
		return OrderSubmission{}, ErrPaymentMethodRequired
	}

	lines := make([]OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderLine{
			ItemID:    it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	subtotal := cart.Subtotal(items)

	return OrderSubmission{
		IdempotencyKey:  v.ID,
		UserID:          v.UserID,
		DomainType:      v.DomainType,
		AddressID:       *v.SelectedAddressID,
		PaymentMethodID: *v.SelectedPaymentMethodID,
		Lines:           lines,
		Subtotal:        subtotal,
		DeliveryFee:     v.DeliveryFeeEstimate,
		Total:           subtotal.Add(v.DeliveryFeeEstimate),
	}, nil
}

// OrderPlacement is the order the backend actually holds. When Replayed is set
// the key had already been used and Lines and Total describe that first order,
// not the submission that was just sent.
type OrderPlacement struct {
	OrderID           uuid.UUID
	EstimatedDelivery time.Time
	Lines             []OrderLine
	Total             cart.Money
	Replayed          bool
}

// Quantities sums the placed quantity per item id.
func (p OrderPlacement) Quantities() map[string]int {
	out := make(map[string]int, len(p.Lines))
	for _, l := range p.Lines {
		out[l.ItemID] += l.Quantity
	}
	return out
}

type OrderReceipt struct {
	OrderID           uuid.UUID
	UserID            uuid.UUID
	DomainType        cart.DomainType
	EstimatedDelivery time.Time
	Total             cart.Money
	Replayed          bool
	PlacedAt          time.Time
}

func NewOrderReceipt(sub OrderSubmission, placement OrderPlacement, placedAt time.Time) OrderReceipt {
	return OrderReceipt{
		OrderID:           placement.OrderID,
		UserID:            sub.UserID,
		DomainType:        sub.DomainType,
		EstimatedDelivery: placement.EstimatedDelivery,
		Total:             placement.Total,
		Replayed:          placement.Replayed,
		PlacedAt:          placedAt,
	}
}
