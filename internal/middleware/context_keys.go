package middleware

import (
	"context"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey        = contextKey("userID")
	ledgerContextKey = contextKey("ledgerContext")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetLedgerContext returns the accounting context resolved by LedgerContextMiddleware.
func GetLedgerContext(c *gin.Context) (domain.AccountingContext, bool) {
	actx, ok := c.Request.Context().Value(ledgerContextKey).(domain.AccountingContext)
	return actx, ok
}
