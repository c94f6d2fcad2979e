// internal/services/auth_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/config"
	"github.com/aurum-jewels/admin-console/internal/models"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type AuthService struct {
	backend Backend
	cfg     *config.Config
	logger  *logrus.Entry
}

type AuthResponse struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"` // in seconds
}

func NewAuthService(b Backend, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		backend: b,
		cfg:     cfg,
		logger:  logger.WithField("service", "auth"),
	}
}

// Login checks the credentials against the store backend and issues a
// console session. Accounts without the admin flag are refused.
func (s *AuthService) Login(ctx context.Context, req backend.LoginInput) (*AuthResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	result, err := s.backend.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	if !result.Admin() {
		s.logger.WithField("user_id", result.ID).Warn("Rejected console login for non-admin account")
		return nil, backend.ErrNotAdmin
	}

	token, err := utils.GenerateSessionToken(result.User, result.Token, s.cfg.JWT.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	s.logger.WithField("user_id", result.ID).Info("Admin logged in")
	return &AuthResponse{
		User:        result.User,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.SessionTTL * 3600,
	}, nil
}
