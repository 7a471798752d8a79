package request

import "github.com/google/uuid"

type SelectAddressRequest struct {
	AddressID uuid.UUID `json:"addressId" binding:"required"`
}

type SelectPaymentMethodRequest struct {
	PaymentMethodID uuid.UUID `json:"paymentMethodId" binding:"required"`
}
