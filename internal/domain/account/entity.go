package account

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAddressNotFound       = errors.New("address not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

type Address struct {
	ID          uuid.UUID
	Label       string
	FullAddress string
	Phone       string
	IsDefault   bool
}

func (a Address) Identifier() uuid.UUID { return a.ID }
func (a Address) Default() bool         { return a.IsDefault }

type PaymentMethodKind string

const (
	PaymentCard           PaymentMethodKind = "card"
	PaymentCashOnDelivery PaymentMethodKind = "cash"
	PaymentWallet         PaymentMethodKind = "wallet"
)

// PaymentMethod records only a reference; card data never reaches this service.
type PaymentMethod struct {
	ID        uuid.UUID
	Kind      PaymentMethodKind
	Last4     *string
	IsDefault bool
}

func (p PaymentMethod) Identifier() uuid.UUID { return p.ID }
func (p PaymentMethod) Default() bool         { return p.IsDefault }

type Profile struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Phone       string
	ImageRef    string
}
