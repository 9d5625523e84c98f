package middleware

import (
	"context"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

type contextKey string

const (
	ctxStaffUser contextKey = "staff_user"
	ctxClient    contextKey = "client"
)

// StaffFromContext returns the authenticated staff user, if any.
func StaffFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(ctxStaffUser).(*models.User)
	return user, ok && user != nil
}

// ClientFromContext returns the authenticated shopper, if any.
func ClientFromContext(ctx context.Context) (*models.Client, bool) {
	client, ok := ctx.Value(ctxClient).(*models.Client)
	return client, ok && client != nil
}
