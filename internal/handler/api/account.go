package api

import (
	"net/http"

	"unicart/internal/domain/account"
	resdto "unicart/internal/handler/dto/response"
	"unicart/internal/handler/httperr"
	"unicart/internal/pkg/errs"
	"unicart/internal/usecase/commands"
	"unicart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	cmds commands.AccountCommands
	q    queries.AccountQueries
}

func NewAccountHandler(cmds commands.AccountCommands, q queries.AccountQueries) *AccountHandler {
	return &AccountHandler{cmds: cmds, q: q}
}

// @Summary List addresses
// @Description Served from the reference cache; stale is true when the backend was unreachable
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AddressesResponse
// @Failure 502 {object} httperr.Response
// @Router /me/addresses [get]
func (h *AccountHandler) Addresses(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.q.Addresses(c.Request.Context(), userID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromAddressesView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List payment methods
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.PaymentMethodsResponse
// @Failure 502 {object} httperr.Response
// @Router /me/payment-methods [get]
func (h *AccountHandler) PaymentMethods(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.q.PaymentMethods(c.Request.Context(), userID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromPaymentMethodsView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get profile
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ProfileResponse
// @Failure 404 {object} httperr.Response
// @Router /me/profile [get]
func (h *AccountHandler) Profile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := h.q.Profile(c.Request.Context(), userID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromProfileView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Set default address
// @Tags account
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /me/addresses/{id}/default [put]
func (h *AccountHandler) SetDefaultAddress(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.SetDefaultAddress(c.Request.Context(), userID, id); err != nil {
		abortAccountError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Set default payment method
// @Tags account
// @Security BearerAuth
// @Param id path string true "Payment method ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /me/payment-methods/{id}/default [put]
func (h *AccountHandler) SetDefaultPaymentMethod(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.SetDefaultPaymentMethod(c.Request.Context(), userID, id); err != nil {
		abortAccountError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// the path names the resource here, so unknown ids are 404 rather than 422
func abortAccountError(c *gin.Context, err error) {
	if errs.Is(err, account.ErrAddressNotFound) || errs.Is(err, account.ErrPaymentMethodNotFound) {
		_, msg := statusFor(err)
		httperr.AbortWithError(c, http.StatusNotFound, err, msg, nil)
		return
	}
	abortWithMappedError(c, err)
}
