package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"planify/internal/service"
)

// Claims are the fields of a provider ID token the client cares about.
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes idToken without verifying its signature. Only
// display fields and expiry are read from it.
func ParseClaims(idToken string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("parsing id token: %w", err)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

// Expiry returns the token expiry, or zero if the token has none.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Complete fills the fields of cred that the provider response left empty
// from the ID token claims.
func Complete(cred service.Credential) service.Credential {
	claims, err := ParseClaims(cred.IDToken)
	if err != nil {
		return cred
	}
	if cred.User.UID == "" {
		cred.User.UID = claims.UserID
	}
	if cred.User.Email == "" {
		cred.User.Email = claims.Email
	}
	if cred.User.DisplayName == "" {
		cred.User.DisplayName = claims.Name
	}
	if exp := claims.Expiry(); !exp.IsZero() {
		cred.ExpiresAt = exp
	}
	return cred
}
