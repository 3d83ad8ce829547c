package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier проверяет сессионный токен провайдера идентификации.
// Собственных токенов сервис не выпускает.
type TokenVerifier struct {
	key []byte
}

func NewTokenVerifier(key string) *TokenVerifier {
	return &TokenVerifier{key: []byte(key)}
}

// Validate возвращает ID пользователя из claim "sub"
func (v *TokenVerifier) Validate(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return "", errors.New("token has no subject")
		}
		return sub, nil
	}
	return "", errors.New("invalid token")
}
