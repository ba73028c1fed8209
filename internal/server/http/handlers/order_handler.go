package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/domain/model"
	"github.com/polkiloo/orderservice/internal/server/http/dto"
)

const (
	totalCountHeader = "X-Total-Count"
	totalPagesHeader = "X-Total-Pages"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domainErrors.ErrInvalidRequest)
		return
	}
	if err := req.Validate(); err != nil {
		abortWithError(c, err)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentPrincipal(c), req.ToModel())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromOrder(order))
}

// Get handles GET /api/orders/order/:orderId.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.GetOrder(c.Request.Context(), CurrentPrincipal(c), c.Param("orderId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOrder(order))
}

// Details handles GET /api/orders/order/:orderId/details.
func (h *OrderHandler) Details(c *gin.Context) {
	details, err := h.facade.OrderDetails(c.Request.Context(), CurrentPrincipal(c), c.Param("orderId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOrderDetails(details))
}

// ListByUser handles GET /api/orders/user/:userId.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	principal := CurrentPrincipal(c)
	userID := c.Param("userId")
	if userID != principal.UserID && !principal.IsAdmin() {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	page, err := parsePageRequest(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.facade.OrdersByUser(c.Request.Context(), userID, page)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(result.Orders))
	for i := range result.Orders {
		response = append(response, dto.FromOrder(&result.Orders[i]))
	}
	c.Header(totalCountHeader, strconv.FormatInt(result.TotalElements, 10))
	c.Header(totalPagesHeader, strconv.Itoa(result.TotalPages))
	c.JSON(http.StatusOK, response)
}

func parsePageRequest(c *gin.Context) (model.PageRequest, error) {
	page := model.DefaultPageRequest()
	if raw, ok := c.GetQuery("page"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, domainErrors.ErrInvalidPagination
		}
		page.Page = n
	}
	if raw, ok := c.GetQuery("size"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, domainErrors.ErrInvalidPagination
		}
		page.Size = n
	}
	if sortBy := c.Query("sortBy"); sortBy != "" {
		page.SortBy = sortBy
	}
	if dir, ok := c.GetQuery("sortDir"); ok {
		page.Direction = model.ParseSortDirection(dir)
	}
	return page, nil
}
