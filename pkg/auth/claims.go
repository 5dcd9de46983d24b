package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by the calculator API. The subject
// identifies the calling client; scopes grant access to operations.
type Claims struct {
	jwt.RegisteredClaims
	ClientName string   `json:"client_name,omitempty"`
	Scopes     []string `json:"scopes"`
}

// HasScope checks if the claims include the specified scope.
func (c Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// Scope constants
const (
	ScopeCalculate = "schedules:calculate"
	ScopeAdmin     = "admin"
)
