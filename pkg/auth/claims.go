// Package auth verifies JWTs issued by the hosted auth provider. Login,
// sessions and password storage live in the provider; this package only
// validates its tokens and exposes the claims to handlers.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsKey is the context key for storing JWT claims.
	ClaimsKey contextKey = "claims"
)

// Claims represents the JWT claims issued by the auth provider. Standard
// fields (sub, iss, exp) come from RegisteredClaims; the provider adds the
// dashboard role and branch assignments.
type Claims struct {
	jwt.RegisteredClaims
	Email    string   `json:"email,omitempty"`
	Role     string   `json:"role,omitempty"`     // 'super_admin', 'admin', 'staff'
	Branches []string `json:"branches,omitempty"` // Branch IDs this admin may manage
}

// GetClaims retrieves JWT claims from the request context.
// Returns nil and false if claims are not present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}

// AdminIDFromContext extracts the authenticated admin's ID from context.
// Returns nil when unauthenticated or when the subject is not a UUID, so
// system operations without a request context still audit cleanly.
func AdminIDFromContext(ctx context.Context) *uuid.UUID {
	claims, ok := GetClaims(ctx)
	if !ok || claims == nil {
		return nil
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil
	}
	return &id
}
