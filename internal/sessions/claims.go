package sessions

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the display-only view of a session token.
type Claims struct {
	Subject   string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// DecodeClaims reads the registered claims of a JWT without verifying its
// signature. The result must not be used for authorization decisions.
func DecodeClaims(token string) (*Claims, error) {

	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &registered); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}

	claims := &Claims{
		Subject: registered.Subject,
	}
	if registered.IssuedAt != nil {
		issuedAt := registered.IssuedAt.Time
		claims.IssuedAt = &issuedAt
	}
	if registered.ExpiresAt != nil {
		expiresAt := registered.ExpiresAt.Time
		claims.ExpiresAt = &expiresAt
	}

	return claims, nil
}
