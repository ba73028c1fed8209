package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/server/http/dto"
)

// ProductHandler serves product lookups and single product orders.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// PlaceOrder handles POST /api/orders/product.
func (h *ProductHandler) PlaceOrder(c *gin.Context) {
	var req dto.ProductOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ShippingAddress == nil {
		abortWithError(c, domainErrors.ErrInvalidRequest)
		return
	}

	order, err := h.facade.PlaceProductOrder(c.Request.Context(), CurrentPrincipal(c), req.ToModel())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromOrder(order))
}

// Get handles GET /api/products/:productId.
func (h *ProductHandler) Get(c *gin.Context) {
	res, err := h.facade.Product(c.Request.Context(), c.Param("productId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromResolution(res))
}
