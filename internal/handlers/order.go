// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/services"
	"github.com/pixelarium/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toOrderResponse(order))
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(toOrderResponses(orders), total, params))
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toOrderResponse(order))
}

// PUT /orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	var req services.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toOrderResponse(order))
}

// DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// PUT /orders/:id/status/:statusType
func (h *OrderHandler) ChangeOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}
	status, ok := parseOrderStatus(c, c.Param("statusType"))
	if !ok {
		return
	}

	order, err := h.orderService.ChangeOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toOrderResponse(order))
}

// POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GET /orders/user/:id
func (h *OrderHandler) GetOrdersByUser(c *gin.Context) {
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	orders, err := h.orderService.FindOrdersByUser(c.Request.Context(), userID)
	h.respondOrders(c, orders, err)
}

// GET /orders/status/:statusType
func (h *OrderHandler) GetOrdersByStatus(c *gin.Context) {
	status, ok := parseOrderStatus(c, c.Param("statusType"))
	if !ok {
		return
	}

	orders, err := h.orderService.FindOrdersByStatus(c.Request.Context(), status)
	h.respondOrders(c, orders, err)
}

// GET /orders/date/:date
func (h *OrderHandler) GetOrdersByDate(c *gin.Context) {
	day, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	orders, err := h.orderService.FindOrdersByDate(c.Request.Context(), day)
	h.respondOrders(c, orders, err)
}

// GET /orders/date-range?from=&to=
func (h *OrderHandler) GetOrdersByDateRange(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	orders, err := h.orderService.FindOrdersByDateRange(c.Request.Context(), from, to)
	h.respondOrders(c, orders, err)
}

// GET /orders/price/:price
func (h *OrderHandler) GetOrdersByTotalPrice(c *gin.Context) {
	total, ok := parseDecimal(c, c.Param("price"))
	if !ok {
		return
	}

	orders, err := h.orderService.FindOrdersByTotalPrice(c.Request.Context(), total)
	h.respondOrders(c, orders, err)
}

func (h *OrderHandler) respondOrders(c *gin.Context, orders []models.Order, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, toOrderResponses(orders))
}
