package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

// Claims wrap the opaque backend token. There is no exp claim: the cookie
// carrying them lives as long as the browser session.
type Claims struct {
	BackendToken string `json:"bt"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, s models.Session) (string, error) {
	claims := Claims{
		BackendToken: s.Token,
		Email:        s.Email,
		Role:         s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.BackendToken == "" {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

func (c *Claims) Session() *models.Session {
	return &models.Session{Token: c.BackendToken, Email: c.Email, Role: c.Role}
}
