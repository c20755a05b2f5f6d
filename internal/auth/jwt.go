package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// GenerateToken signs a stateless session token for the given member. The
// token carries the member ID and expiry only; the role is re-resolved from
// the member record on every request so role edits are never stale.
func GenerateToken(secret, memberID string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": memberID,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a token signature and expiry and returns the member
// ID it was issued for.
func ParseToken(secret, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", ErrInvalidClaims
	}

	memberID, ok := claims["user_id"].(string)
	if !ok {
		return "", ErrInvalidClaims
	}
	return memberID, nil
}
