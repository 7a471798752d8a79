package api

import (
	"net/http"

	reqdto "unicart/internal/handler/dto/request"
	resdto "unicart/internal/handler/dto/response"
	"unicart/internal/handler/httperr"
	"unicart/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Open checkout
// @Description Starts a checkout for one domain cart, or returns the open one. An empty cart yields redirectToCart.
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Success 200 {object} resdto.OpenCheckoutResponse
// @Success 201 {object} resdto.OpenCheckoutResponse
// @Failure 502 {object} httperr.Response
// @Router /checkout/{domain} [post]
func (h *CheckoutHandler) Open(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	result, err := h.cmds.Open(c.Request.Context(), userID, domain)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
		c.Header("Location", "/api/checkout/"+domain.String())
	}
	c.JSON(status, resdto.FromOpenResult(result))
}

// @Summary Get checkout
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Success 200 {object} resdto.CheckoutSessionResponse
// @Failure 404 {object} httperr.Response
// @Router /checkout/{domain} [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	view, err := h.cmds.Get(c.Request.Context(), userID, domain)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutView(view))
}

// @Summary Select delivery address
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Param request body reqdto.SelectAddressRequest true "Address"
// @Success 200 {object} resdto.CheckoutSessionResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/{domain}/address [put]
func (h *CheckoutHandler) SetAddress(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	var req reqdto.SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.SetAddress(c.Request.Context(), userID, domain, req.AddressID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutView(view))
}

// @Summary Select payment method
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Param request body reqdto.SelectPaymentMethodRequest true "Payment method"
// @Success 200 {object} resdto.CheckoutSessionResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/{domain}/payment-method [put]
func (h *CheckoutHandler) SetPaymentMethod(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	var req reqdto.SelectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.SetPaymentMethod(c.Request.Context(), userID, domain, req.PaymentMethodID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutView(view))
}

// @Summary Submit order
// @Description Places the order. On success the domain cart is cleared; on failure it is kept and the session can be resubmitted.
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Success 201 {object} resdto.OrderReceiptResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout/{domain}/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	receipt, err := h.cmds.Submit(c.Request.Context(), userID, domain)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrderReceipt(receipt))
}

// @Summary Abandon checkout
// @Tags checkout
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /checkout/{domain} [delete]
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	if err := h.cmds.Abandon(c.Request.Context(), userID, domain); err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
