package api

import (
	"context"
	"net/http"

	"unicart/internal/domain/cart"
	reqdto "unicart/internal/handler/dto/request"
	resdto "unicart/internal/handler/dto/response"
	"unicart/internal/handler/httperr"
	"unicart/internal/usecase/commands"
	"unicart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// @Summary Cart summary
// @Description Per-domain item counts and subtotals plus the grand total across all domains
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartSummaryResponse
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /carts [get]
func (h *CartHandler) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	summary, err := h.q.Summary(c.Request.Context(), userID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromCartSummary(summary)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary All cart items
// @Description Items of every domain cart, grouped in display order
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartItemsResponse
// @Router /carts/items [get]
func (h *CartHandler) AllItems(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	items, err := h.q.AllItems(c.Request.Context(), userID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromCartItems(items)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.CartItemsResponse{Items: res})
}

// @Summary Domain cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type" Enums(restaurant, market, pharmacy, personal-care, gym)
// @Success 200 {object} resdto.DomainCartResponse
// @Failure 400 {object} httperr.Response
// @Router /carts/{domain} [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	h.respondWithCart(c, userID, domain)
}

// @Summary Add item
// @Description Adds an item or increases the quantity of an existing line
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Param request body reqdto.AddCartItemRequest true "Item"
// @Success 200 {object} resdto.DomainCartResponse
// @Failure 400 {object} httperr.Response
// @Router /carts/{domain}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.AddItem(c.Request.Context(), userID, domain, req.ToInput()); err != nil {
		abortWithMappedError(c, err)
		return
	}
	h.respondWithCart(c, userID, domain)
}

// @Summary Increase quantity
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.DomainCartResponse
// @Failure 404 {object} httperr.Response
// @Router /carts/{domain}/items/{id}/increase [post]
func (h *CartHandler) Increase(c *gin.Context) {
	h.mutateItem(c, h.cmds.IncreaseQuantity)
}

// @Summary Decrease quantity
// @Description Decrements by one; a line never drops below one
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.DomainCartResponse
// @Failure 404 {object} httperr.Response
// @Router /carts/{domain}/items/{id}/decrease [post]
func (h *CartHandler) Decrease(c *gin.Context) {
	h.mutateItem(c, h.cmds.DecreaseQuantity)
}

// @Summary Remove item
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.DomainCartResponse
// @Failure 404 {object} httperr.Response
// @Router /carts/{domain}/items/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	h.mutateItem(c, h.cmds.RemoveItem)
}

// @Summary Clear domain cart
// @Tags carts
// @Security BearerAuth
// @Param domain path string true "Domain type"
// @Success 204 "No Content"
// @Router /carts/{domain} [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	if err := h.cmds.Clear(c.Request.Context(), userID, domain); err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type itemMutation func(ctx context.Context, userID uuid.UUID, domain cart.DomainType, itemID string) error

func (h *CartHandler) mutateItem(c *gin.Context, mutate itemMutation) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	domain, ok := domainParam(c)
	if !ok {
		return
	}
	if err := mutate(c.Request.Context(), userID, domain, c.Param("id")); err != nil {
		abortWithMappedError(c, err)
		return
	}
	h.respondWithCart(c, userID, domain)
}

func (h *CartHandler) respondWithCart(c *gin.Context, userID uuid.UUID, domain cart.DomainType) {
	view, err := h.q.ItemsByType(c.Request.Context(), userID, domain)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromDomainCartView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
