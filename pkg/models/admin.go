package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents an administrator account for the dashboard.
// Authentication itself is delegated to the hosted auth provider; this row
// carries the dashboard-side profile and role assignment.
type Admin struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"` // 'super_admin', 'admin', 'staff'
	Branches  []string   `json:"branches"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Role constants for admin accounts.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleSuperAdmin, RoleAdmin, RoleStaff}

// IsValidRole checks if the given role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
