package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

func secret() ([]byte, error) {
	if jwtSecret != nil {
		return jwtSecret, nil
	}
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		return nil, errors.New("JWT_SECRET no definida")
	}
	jwtSecret = []byte(s)
	return jwtSecret, nil
}

type Claims struct {
	UserID  string `json:"user_id"`
	EsAdmin bool   `json:"esAdmin"`
	jwt.RegisteredClaims
}

// GerarToken genera un JWT con validez de 24h
func GerarToken(userID string, esAdmin bool) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}
	claims := &Claims{
		UserID:  userID,
		EsAdmin: esAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidarToken valida el token y retorna las claims
func ValidarToken(tokenStr string) (*Claims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido o expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("no fue posible extraer las claims")
	}
	return claims, nil
}
