package apperrors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidRole      = errors.New("invalid role")
	ErrLastSuperAdmin   = errors.New("cannot deactivate last super admin")
	ErrOrderNotEditable = errors.New("order can no longer be edited")
	ErrAlreadyDelivered = errors.New("supplier order already delivered")
	ErrInsightsDisabled = errors.New("AI insights are not configured")
)
