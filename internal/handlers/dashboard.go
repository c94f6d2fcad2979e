// internal/handlers/dashboard.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/aurum-jewels/admin-console/internal/analytics"
	"github.com/aurum-jewels/admin-console/internal/refresh"
	"github.com/aurum-jewels/admin-console/internal/services"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GET /dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	dashboard, err := h.dashboardService.Dashboard(c.Request.Context(), session)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /dashboard/live
func (h *DashboardHandler) StreamDashboard(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	streamView(c, "dashboard", func(ctx context.Context, onChange func(analytics.Dashboard)) (*refresh.Coordinator[analytics.Dashboard], error) {
		return h.dashboardService.WatchDashboard(ctx, session, onChange)
	})
}

// GET /analytics/products
func (h *DashboardHandler) GetProductAnalytics(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	query := services.ProductAnalyticsQuery{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Order:  analytics.SortDesc,
	}
	if c.Query("order") == string(analytics.SortAsc) {
		query.Order = analytics.SortAsc
	}

	view, err := h.dashboardService.ProductAnalytics(c.Request.Context(), session, query)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}
