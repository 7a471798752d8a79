package queries

import (
	"time"

	"unicart/internal/domain/account"
	"unicart/internal/domain/cart"

	"github.com/google/uuid"
)

// DomainCartView is a point-in-time read of one domain's cart
type DomainCartView struct {
	DomainType cart.DomainType
	Items      []cart.Item
	ItemCount  int
	LineCount  int
	TotalPrice cart.Money
}

type DomainCartSummary struct {
	DomainType cart.DomainType
	ItemCount  int
	LineCount  int
	Subtotal   cart.Money
}

// CartSummary spans every domain; empty domains are included with zero totals.
type CartSummary struct {
	Domains    []DomainCartSummary
	ItemCount  int
	GrandTotal cart.Money
}

type AddressesView struct {
	Addresses []account.Address
	// DefaultID is the entry pre-selected at checkout, resolved even when the
	// backend holds zero or several flagged entries.
	DefaultID *uuid.UUID
	FetchedAt time.Time
	Stale     bool
}

type PaymentMethodsView struct {
	PaymentMethods []account.PaymentMethod
	DefaultID      *uuid.UUID
	FetchedAt      time.Time
	Stale          bool
}

type ProfileView struct {
	Profile   account.Profile
	FetchedAt time.Time
	Stale     bool
}
