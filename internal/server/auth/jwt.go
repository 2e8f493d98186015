// Package auth issues and verifies the HS256 access tokens that bind an
// API caller to a principal address. The token only authenticates; every
// authorization decision happens in the engine against the carried address.
package auth

import (
	"time"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/principal"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the caller's principal address.
type Claims struct {
	jwt.RegisteredClaims
	Address string
}

// GenerateToken mints a signed token for the given principal.
func GenerateToken(p principal.Principal, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Address: p.String(),
	})
	return token.SignedString(secretKey)
}

// GetPrincipalFromToken verifies the token signature and expiry and returns
// the embedded principal. Invalid, expired, or malformed tokens yield
// common.ErrInvalidToken.
func GetPrincipalFromToken(tokenString string, secretKey []byte) (principal.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return principal.Zero, common.ErrInvalidToken
	}

	p, err := principal.Parse(claims.Address)
	if err != nil || p.IsZero() {
		return principal.Zero, common.ErrInvalidToken
	}
	return p, nil
}
