// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/i18n"
	"github.com/aurum-jewels/admin-console/internal/services"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /users
func (h *UserHandler) GetUsers(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	users, err := h.userService.ListUsers(c.Request.Context(), session, params.Search)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.Paginate(users, params)
	utils.PaginatedResponse(c, result)
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	detail, err := h.userService.GetUserDetail(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, detail)
}

// PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req backend.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), session, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}

// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if c.Param("id") == session.UserID {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUserSelf), nil)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), session, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDeleted),
	})
}
