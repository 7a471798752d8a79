package cart

import (
	"errors"
	"strings"
)

var (
	ErrUnknownDomainType = errors.New("unknown domain type")
	ErrInvalidQuantity   = errors.New("quantity must be between 1 and 999")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrPriceTooHigh      = errors.New("unit price exceeds the allowed maximum")
	ErrEmptyItemID       = errors.New("item id is required")
	ErrEmptyItemName     = errors.New("item name is required")
	ErrDomainMismatch    = errors.New("item domain does not match cart domain")
	ErrItemNotFound      = errors.New("item not found in cart")
)

// DomainType identifies one shopping vertical.
type DomainType string

const (
	DomainRestaurant   DomainType = "restaurant"
	DomainMarket       DomainType = "market"
	DomainPharmacy     DomainType = "pharmacy"
	DomainPersonalCare DomainType = "personal-care"
	DomainGym          DomainType = "gym"
)

// AllDomainTypes is in display order.
var AllDomainTypes = []DomainType{
	DomainRestaurant,
	DomainMarket,
	DomainPharmacy,
	DomainPersonalCare,
	DomainGym,
}

func ParseDomainType(s string) (DomainType, error) {
	d := DomainType(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", ErrUnknownDomainType
	}
	return d, nil
}

func (d DomainType) String() string {
	return string(d)
}

func (d DomainType) IsValid() bool {
	switch d {
	case DomainRestaurant, DomainMarket, DomainPharmacy, DomainPersonalCare, DomainGym:
		return true
	default:
		return false
	}
}

// Line bounds. With both in force no cart total can come near int64 overflow.
const (
	MaxQuantity       = 999
	MaxUnitPriceCents = 10_000_000
)

// Money is an amount in minor units (cents). Single currency only.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}
