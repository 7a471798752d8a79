package cart

import "strings"

// Item is one line of a domain cart. Identity is (DomainType, ID).
type Item struct {
	ID         string
	DomainType DomainType
	Name       string
	UnitPrice  Money
	Quantity   int
	ImageRef   string
	Metadata   map[string]string
}

type ItemKey struct {
	DomainType DomainType
	ID         string
}

func (i Item) Key() ItemKey {
	return ItemKey{DomainType: i.DomainType, ID: i.ID}
}

func (i Item) LineTotal() Money {
	return i.UnitPrice.Times(i.Quantity)
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyItemID
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyItemName
	}
	if !i.DomainType.IsValid() {
		return ErrUnknownDomainType
	}
	if i.Quantity < 1 || i.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if i.UnitPrice.Cents() < 0 {
		return ErrNegativePrice
	}
	if i.UnitPrice.Cents() > MaxUnitPriceCents {
		return ErrPriceTooHigh
	}
	return nil
}

func (i Item) clone() Item {
	c := i
	if i.Metadata != nil {
		c.Metadata = make(map[string]string, len(i.Metadata))
		for k, v := range i.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}
