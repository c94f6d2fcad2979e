// internal/handlers/audit.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aurum-jewels/admin-console/internal/services"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// GET /audit-logs
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.AuditFilter{
		PaginationParams: params,
		UserID:           c.Query("user_id"),
		ResourceType:     c.Query("resource_type"),
	}

	logs, total, err := h.auditService.List(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result)
}
