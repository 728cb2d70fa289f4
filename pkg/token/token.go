package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims structure for custom claims in JWT
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Secret keys and lifetimes for the two token kinds.
// access token 短效，refresh token 長效（輪替使用）
var (
	AccessSecret      = []byte("secure_access_secret_key")
	RefreshSecret     = []byte("secure_refresh_secret_key")
	accessExpiration  = 15 * time.Minute
	refreshExpiration = 10 * 24 * time.Hour
)

// Configure override secrets and lifetimes from config
func Configure(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) {
	if accessSecret != "" {
		AccessSecret = []byte(accessSecret)
	}
	if refreshSecret != "" {
		RefreshSecret = []byte(refreshSecret)
	}
	if accessTTL > 0 {
		accessExpiration = accessTTL
	}
	if refreshTTL > 0 {
		refreshExpiration = refreshTTL
	}
}

// RefreshExpiration lifetime of a refresh token
func RefreshExpiration() time.Duration {
	return refreshExpiration
}

// AccessExpiration lifetime of an access token
func AccessExpiration() time.Duration {
	return accessExpiration
}

// GenerateAccessToken generates a short-lived access JWT
func GenerateAccessToken(userID, issuer string) (string, error) {
	return generate(userID, issuer, AccessSecret, accessExpiration)
}

// GenerateRefreshToken generates a long-lived refresh JWT
func GenerateRefreshToken(userID, issuer string) (string, error) {
	return generate(userID, issuer, RefreshSecret, refreshExpiration)
}

func generate(userID, issuer string, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti 確保同一秒內產生的兩個 token 也不相同（refresh 輪替依賴這點）
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccessToken parses an access JWT and extracts the Claims
func ParseAccessToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, AccessSecret)
}

// ParseRefreshToken parses a refresh JWT and extracts the Claims
func ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, RefreshSecret)
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Check if the signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})

	if err != nil {
		// invalid signature, expired claims, etc.
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
