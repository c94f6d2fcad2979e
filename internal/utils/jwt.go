// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/aurum-jewels/admin-console/internal/models"
)

const sessionIssuer = "admin-console"

// SessionClaims wrap the store backend's token in the console's own signed
// session so handlers can pass it on explicitly.
type SessionClaims struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`
	BackendToken string `json:"backend_token"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte("change-me-console-session-secret")

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateSessionToken(user models.User, backendToken string, ttlHours int) (string, error) {
	if backendToken == "" {
		return "", errors.New("backend token is required")
	}

	now := time.Now()
	claims := SessionClaims{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		IsAdmin:      user.Admin(),
		BackendToken: backendToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		if claims.Issuer != sessionIssuer {
			return nil, errors.New("unexpected token issuer")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
