package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/logging"
)

// RPC invokes the stored business-rule functions that live in the database.
// Password resets, supplier delivery processing and status toggles run inside
// these functions so they stay atomic and enforce their rules server-side;
// this layer only calls them and reports the outcome.
type RPC struct {
	db     *DB
	logger *zap.Logger
}

// NewRPC creates an RPC caller bound to the given pool.
func NewRPC(db *DB, logger *zap.Logger) *RPC {
	return &RPC{db: db, logger: logger.Named("rpc")}
}

// ResetAdminPassword invokes reset_admin_password for the given admin.
// The function hashes and stores the new password and returns true on success.
func (r *RPC) ResetAdminPassword(ctx context.Context, adminID uuid.UUID, newPassword string) error {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT reset_admin_password($1, $2)`, adminID, newPassword).Scan(&ok)
	if err != nil {
		r.logger.Error("reset_admin_password failed",
			zap.String("admin_id", adminID.String()),
			zap.String("error", logging.SanitizeError(err)))
		return fmt.Errorf("reset_admin_password: %w", err)
	}
	if !ok {
		return fmt.Errorf("reset_admin_password: rejected for admin %s", adminID)
	}
	return nil
}

// ProcessSupplierOrderDelivery invokes process_supplier_order_delivery, which
// marks the order delivered and adjusts product stock in one transaction.
func (r *RPC) ProcessSupplierOrderDelivery(ctx context.Context, orderID uuid.UUID) error {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT process_supplier_order_delivery($1)`, orderID).Scan(&ok)
	if err != nil {
		r.logger.Error("process_supplier_order_delivery failed",
			zap.String("supplier_order_id", orderID.String()),
			zap.Error(err))
		return fmt.Errorf("process_supplier_order_delivery: %w", err)
	}
	if !ok {
		return fmt.Errorf("process_supplier_order_delivery: rejected for order %s", orderID)
	}
	return nil
}

// ToggleAdminStatus invokes toggle_admin_status_service_role, which flips an
// admin's active flag while refusing to deactivate the last super admin.
// Returns the new active state.
func (r *RPC) ToggleAdminStatus(ctx context.Context, adminID uuid.UUID) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx,
		`SELECT toggle_admin_status_service_role($1)`, adminID).Scan(&active)
	if err != nil {
		r.logger.Error("toggle_admin_status_service_role failed",
			zap.String("admin_id", adminID.String()),
			zap.Error(err))
		return false, fmt.Errorf("toggle_admin_status_service_role: %w", err)
	}
	return active, nil
}
