package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenIssuer signs HS256 access tokens.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (t *TokenIssuer) Issue(accountID uint, email, role string) (string, error) {
	now := t.Now()
	claims := jwt.MapClaims{
		"id":    accountID,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(t.TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

// AccountIDFromClaims reads the "id" claim, which may arrive as a JSON
// number or a string.
func AccountIDFromClaims(claims jwt.MapClaims) (uint, error) {
	switch v := claims["id"].(type) {
	case float64:
		if v <= 0 {
			return 0, fmt.Errorf("invalid id claim %v", v)
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil || parsed == 0 {
			return 0, fmt.Errorf("could not parse id claim %q", v)
		}
		return uint(parsed), nil
	case nil:
		return 0, fmt.Errorf("no id found in claims")
	default:
		return 0, fmt.Errorf("unsupported id claim type: %T", v)
	}
}
