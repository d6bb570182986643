package gateway

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClientTokenClaims are embedded in the client token handed to the checkout
// session. The token carries the gateway configuration so the sheet can be
// built without a second configuration fetch.
type ClientTokenClaims struct {
	jwt.RegisteredClaims
	MerchantID    string        `json:"merchantId"`
	Configuration Configuration `json:"gatewayConfiguration"`
}

// IssueClientToken signs a short-lived client token for a merchant session.
func IssueClientToken(secret []byte, merchantID string, cfg Configuration, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := ClientTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "dropin-gateway",
			Subject:   merchantID,
		},
		MerchantID:    merchantID,
		Configuration: cfg,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseClientToken validates a client token and returns its claims.
func ParseClientToken(secret []byte, tokenStr string) (*ClientTokenClaims, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &ClientTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ClientTokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClientToken
	}
	return claims, nil
}
