// internal/handlers/order.go
package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aurum-jewels/admin-console/internal/analytics"
	"github.com/aurum-jewels/admin-console/internal/i18n"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/refresh"
	"github.com/aurum-jewels/admin-console/internal/services"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func orderFilterFromQuery(c *gin.Context) analytics.OrderFilter {
	filter := analytics.OrderFilter{
		Search: c.Query("search"),
		Status: models.OrderStatus(c.Query("status")),
	}

	if paidStr := c.Query("paid"); paidStr != "" {
		if paid, err := strconv.ParseBool(paidStr); err == nil {
			filter.Paid = &paid
		}
	}

	if deliveredStr := c.Query("delivered"); deliveredStr != "" {
		if delivered, err := strconv.ParseBool(deliveredStr); err == nil {
			filter.Delivered = &delivered
		}
	}

	return filter
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	filter := orderFilterFromQuery(c)
	if filter.Status != "" && !filter.Status.Valid() {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderInvalidStatus, filter.Status), nil)
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), session, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.Paginate(orders, utils.GetPaginationParams(c))
	utils.PaginatedResponse(c, result)
}

// GET /orders/live
func (h *OrderHandler) StreamOrders(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	filter := orderFilterFromQuery(c)
	streamView(c, "orders", func(ctx context.Context, onChange func([]models.Order)) (*refresh.Coordinator[[]models.Order], error) {
		return h.orderService.WatchOrders(ctx, session, filter, onChange)
	})
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// GET /orders/:id/live
func (h *OrderHandler) StreamOrder(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id := c.Param("id")
	streamView(c, "order", func(ctx context.Context, onChange func(models.Order)) (*refresh.Coordinator[models.Order], error) {
		return h.orderService.WatchOrder(ctx, session, id, onChange)
	})
}

// PUT /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), session, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}
