//go:build unit || e2e

package builder

import (
	"unicart/internal/domain/cart"
	reqdto "unicart/internal/handler/dto/request"
)

type CartItemBuilder struct {
	ID         string
	DomainType cart.DomainType
	Name       string
	PriceCents int64
	Quantity   int
	ImageRef   string
	Metadata   map[string]string
}

func NewCartItemBuilder() *CartItemBuilder {
	return &CartItemBuilder{
		ID:         "A",
		DomainType: cart.DomainMarket,
		Name:       "Organic Apples",
		PriceCents: 3500,
		Quantity:   1,
		ImageRef:   "images/apples.png",
		Metadata:   map[string]string{"storeId": "store-1"},
	}
}

func (b *CartItemBuilder) With(mutate func(*CartItemBuilder)) *CartItemBuilder {
	mutate(b)
	return b
}

func (b *CartItemBuilder) WithID(id string) *CartItemBuilder {
	b.ID = id
	return b
}

func (b *CartItemBuilder) WithDomain(d cart.DomainType) *CartItemBuilder {
	b.DomainType = d
	return b
}

func (b *CartItemBuilder) WithPrice(cents int64) *CartItemBuilder {
	b.PriceCents = cents
	return b
}

func (b *CartItemBuilder) WithQuantity(q int) *CartItemBuilder {
	b.Quantity = q
	return b
}

// Build methods
func (b *CartItemBuilder) BuildDomain() cart.Item {
	return cart.Item{
		ID:         b.ID,
		DomainType: b.DomainType,
		Name:       b.Name,
		UnitPrice:  cart.MustMoney(b.PriceCents),
		Quantity:   b.Quantity,
		ImageRef:   b.ImageRef,
		Metadata:   b.Metadata,
	}
}

func (b *CartItemBuilder) BuildAddRequestDTO() reqdto.AddCartItemRequest {
	qty := b.Quantity
	return reqdto.AddCartItemRequest{
		ID:        b.ID,
		Name:      b.Name,
		UnitPrice: b.PriceCents,
		Quantity:  &qty,
		ImageRef:  b.ImageRef,
		Metadata:  b.Metadata,
	}
}
