package response

import (
	"time"

	"unicart/internal/domain/account"
	"unicart/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AddressResponse struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	FullAddress string    `json:"fullAddress"`
	Phone       string    `json:"phone"`
	IsDefault   bool      `json:"isDefault"`
}

type AddressesResponse struct {
	Addresses []AddressResponse `json:"addresses"`
	DefaultID *uuid.UUID        `json:"defaultId,omitempty"`
	FetchedAt time.Time         `json:"fetchedAt"`
	Stale     bool              `json:"stale"`
}

type PaymentMethodResponse struct {
	ID        uuid.UUID                 `json:"id"`
	Kind      account.PaymentMethodKind `json:"kind"`
	Last4     *string                   `json:"last4,omitempty"`
	IsDefault bool                      `json:"isDefault"`
}

type PaymentMethodsResponse struct {
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
	DefaultID      *uuid.UUID              `json:"defaultId,omitempty"`
	FetchedAt      time.Time               `json:"fetchedAt"`
	Stale          bool                    `json:"stale"`
}

type ProfileResponse struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ImageRef    string    `json:"imageRef,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
	Stale       bool      `json:"stale"`
}

func FromAddressesView(v *queries.AddressesView) (*AddressesResponse, error) {
	res := &AddressesResponse{
		Addresses: make([]AddressResponse, 0, len(v.Addresses)),
		DefaultID: v.DefaultID,
		FetchedAt: v.FetchedAt,
		Stale:     v.Stale,
	}
	if err := copier.Copy(&res.Addresses, &v.Addresses); err != nil {
		return nil, err
	}
	return res, nil
}

func FromPaymentMethodsView(v *queries.PaymentMethodsView) (*PaymentMethodsResponse, error) {
	res := &PaymentMethodsResponse{
		PaymentMethods: make([]PaymentMethodResponse, 0, len(v.PaymentMethods)),
		DefaultID:      v.DefaultID,
		FetchedAt:      v.FetchedAt,
		Stale:          v.Stale,
	}
	if err := copier.Copy(&res.PaymentMethods, &v.PaymentMethods); err != nil {
		return nil, err
	}
	return res, nil
}

func FromProfileView(v *queries.ProfileView) (*ProfileResponse, error) {
	res := &ProfileResponse{FetchedAt: v.FetchedAt, Stale: v.Stale}
	if err := copier.Copy(res, &v.Profile); err != nil {
		return nil, err
	}
	return res, nil
}
