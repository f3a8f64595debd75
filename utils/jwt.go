package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL fija la vigencia de la sesión; no hay refresh: al expirar toca
// autenticarse de nuevo.
const TokenTTL = 24 * time.Hour

// GenerateToken firma un JWT HS256 con sub = id del usuario.
func GenerateToken(userID uint) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET")) // se lee al momento de firmar
	if len(jwtKey) == 0 {
		return "", errors.New("JWT_SECRET no está configurado")
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// VerifyToken valida firma y expiración y devuelve el id del usuario.
func VerifyToken(tokenStr string) (uint, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		return 0, errors.New("JWT_SECRET no está configurado")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("token inválido")
	}

	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("subject inválido")
	}
	return uint(uid), nil
}
