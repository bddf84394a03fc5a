package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer token payload issued by the identity provider. The
// user name matches Player.UserName.
type Claims struct {
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for userName. The identity provider does this
// in production; the server only needs it for tooling and tests.
func GenerateToken(userName, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserName == "" {
		claims.UserName = claims.Subject
	}
	if claims.UserName == "" {
		return nil, errors.New("token has no user name")
	}
	return claims, nil
}
