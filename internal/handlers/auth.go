// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/i18n"
	"github.com/aurum-jewels/admin-console/internal/services"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req backend.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		var authErr *backend.AuthError
		switch {
		case errors.Is(err, backend.ErrNotAdmin):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthNotAdmin))
		case errors.As(err, &authErr):
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		default:
			utils.RespondError(c, err)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"user":       authResponse.User,
		"token":      authResponse.AccessToken,
		"token_type": authResponse.TokenType,
		"expires_in": authResponse.ExpiresIn,
	})
}

// GET /auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": gin.H{
			"_id":     userID,
			"name":    c.GetString("user_name"),
			"isAdmin": c.GetBool("is_admin"),
		},
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// Sessions are stateless; the client drops its token.
	utils.SuccessResponse(c, gin.H{"logged_out": true})
}
