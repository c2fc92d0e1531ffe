package service

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"vault-purge/internal/model"
)

// AuthService validates the bearer tokens presented to the admin API. Tokens
// are HS256 JWTs minted out-of-band with the shared admin secret; there is no
// login flow or user store in this service.
type AuthService struct {
	jwtSecret []byte
}

func NewAuthService(jwtSecret string) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, fmt.Errorf("admin JWT secret cannot be empty")
	}

	return &AuthService{jwtSecret: []byte(jwtSecret)}, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrUnauthorized
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrUnauthorized
	}

	claims := &model.AuthClaims{}
	claims.Subject, _ = claimsMap["sub"].(string)
	if claims.Subject == "" {
		return nil, model.ErrUnauthorized
	}

	return claims, nil
}
