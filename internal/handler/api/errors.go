package api

import (
	"errors"
	"net/http"

	"unicart/internal/domain/account"
	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"
	"unicart/internal/handler/httperr"
	"unicart/internal/handler/middleware"
	"unicart/internal/pkg/errs"
	"unicart/internal/usecase/commands"
	"unicart/internal/usecase/queries"
	"unicart/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errUnauthorized = errors.New("missing authenticated user")
	errInvalidID    = errors.New("invalid id")
)

type errorMapping struct {
	target error
	status int
	msg    string
}

// ordered: marks are checked before the sentinels they may wrap
var errorMappings = []errorMapping{
	{shared.ErrCartUnavailable, http.StatusServiceUnavailable, "Cart storage is temporarily unavailable"},
	{commands.ErrSubmissionFailed, http.StatusBadGateway, "Order submission failed, please retry"},
	{commands.ErrDeliveryFeeUnavailable, http.StatusBadGateway, "Delivery fee estimate unavailable"},
	{commands.ErrBackendFailure, http.StatusBadGateway, "Account service unavailable"},
	{queries.ErrReferenceUnavailable, http.StatusBadGateway, "Account data unavailable"},

	{cart.ErrUnknownDomainType, http.StatusBadRequest, "Unknown domain type"},
	{cart.ErrInvalidQuantity, http.StatusBadRequest, "Quantity must be between 1 and 999"},
	{cart.ErrNegativePrice, http.StatusBadRequest, "Price cannot be negative"},
	{cart.ErrPriceTooHigh, http.StatusBadRequest, "Unit price exceeds the allowed maximum"},
	{cart.ErrEmptyItemID, http.StatusBadRequest, "Item id is required"},
	{cart.ErrEmptyItemName, http.StatusBadRequest, "Item name is required"},
	{cart.ErrDomainMismatch, http.StatusBadRequest, "Item belongs to another domain"},
	{cart.ErrItemNotFound, http.StatusNotFound, "Item not found in cart"},

	{checkout.ErrAddressRequired, http.StatusUnprocessableEntity, "Select a delivery address"},
	{checkout.ErrPaymentMethodRequired, http.StatusUnprocessableEntity, "Select a payment method"},
	{checkout.ErrEmptyOrder, http.StatusUnprocessableEntity, "Cart is empty"},
	{account.ErrAddressNotFound, http.StatusUnprocessableEntity, "Address not found"},
	{account.ErrPaymentMethodNotFound, http.StatusUnprocessableEntity, "Payment method not found"},
	{checkout.ErrSubmissionInProgress, http.StatusConflict, "Order submission already in progress"},
	{checkout.ErrSessionClosed, http.StatusConflict, "Checkout session is closed"},
	{checkout.ErrInvalidTransition, http.StatusConflict, "Checkout session cannot do that now"},
	{commands.ErrSessionNotFound, http.StatusNotFound, "Checkout session not found"},
	{queries.ErrProfileNotFound, http.StatusNotFound, "Profile not found"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func abortWithMappedError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	httperr.AbortWithError(c, status, err, msg, nil)
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func domainParam(c *gin.Context) (cart.DomainType, bool) {
	domain, err := cart.ParseDomainType(c.Param("domain"))
	if err != nil {
		abortWithMappedError(c, err)
		return "", false
	}
	return domain, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errInvalidID), "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
