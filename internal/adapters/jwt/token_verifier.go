package token_adapter

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("token is invalid")

// TokenVerifier проверяет HS256-токены, выпущенные сервисом аутентификации.
type TokenVerifier struct {
	signingKey []byte
}

func NewTokenVerifier(signingKey string) (*TokenVerifier, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenVerifier{signingKey: []byte(signingKey)}, nil
}

type viewerClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Verify возвращает пользователя из claims. Просроченный или поддельный токен - ErrTokenInvalid.
func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (contextkeys.Viewer, error) {
	verifierLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenVerifier",
		"method":    "Verify",
	})

	token, err := jwt.ParseWithClaims(tokenString, &viewerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			verifierLogger.Warn("Token has expired", nil)
		} else {
			verifierLogger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return contextkeys.Viewer{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*viewerClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		verifierLogger.Warn("Token has no user_id claim", nil)
		return contextkeys.Viewer{}, ErrTokenInvalid
	}
	return contextkeys.Viewer{UserID: claims.UserID, Role: domain.ParseViewerRole(claims.Role)}, nil
}
