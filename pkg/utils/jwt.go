package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrMissingSecret = errors.New("JWT secret key is missing")

// Claims terpadu dengan field flat untuk id_role dan privileges.
type Claims struct {
	IDKaryawan int    `json:"id_karyawan"`
	Role       string `json:"role"`
	IDRole     int    `json:"id_role"`
	Privileges []int  `json:"privileges"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

// HasPrivilege memeriksa apakah klaim memuat privilege tertentu.
func (c *Claims) HasPrivilege(priv int) bool {
	for _, p := range c.Privileges {
		if p == priv {
			return true
		}
	}
	return false
}

// GenerateJWTToken membuat token HS256 dengan exp sesuai parameter.
func GenerateJWTToken(secret string, claims Claims, exp time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWTToken memvalidasi token JWT dan mengembalikan klaim terpadu.
func ValidateJWTToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
