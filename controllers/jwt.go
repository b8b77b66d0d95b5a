package controllers

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type accessClaims struct {
	Rol string `json:"rol"`
	jwt.RegisteredClaims
}

func firmarAccessToken(usuarioID int64, rol string) (string, error) {
	now := time.Now()
	vigencia := time.Duration(conf.Security.AccessTokenMinutes) * time.Minute

	claims := accessClaims{
		Rol: rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(usuarioID, 10),
			Issuer:    "ventanilla",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(vigencia)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(conf.Security.JwtSecret))
}

// parseAccessToken valida firma y expiración y devuelve el id del usuario.
func parseAccessToken(tokenStr string) (int64, bool) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(conf.Security.JwtSecret), nil
		})
	if err != nil || !parsed.Valid {
		return 0, false
	}
	claims, ok := parsed.Claims.(*accessClaims)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
