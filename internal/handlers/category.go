// internal/handlers/category.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/i18n"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/refresh"
	"github.com/aurum-jewels/admin-console/internal/services"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), session, c.Query("search"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// GET /categories/live
func (h *CategoryHandler) StreamCategories(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	search := c.Query("search")
	streamView(c, "categories", func(ctx context.Context, onChange func([]models.Category)) (*refresh.Coordinator[[]models.Category], error) {
		return h.categoryService.WatchCategories(ctx, session, search, onChange)
	})
}

// POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req backend.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), session, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"category": category,
	})
}

// DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), session, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCategoryDeleted),
	})
}
