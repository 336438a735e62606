package middleware

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// LedgerContextHeader selects the ledger: "personal" or "business:<companyID>".
const LedgerContextHeader = "X-Ledger-Context"

// LedgerContextQueryParam is accepted where a header cannot be set (downloads).
const LedgerContextQueryParam = "context"

// LedgerContextMiddleware resolves and authorizes the requested accounting context
// before any ledger handler runs. It must be mounted after AuthMiddleware.
func LedgerContextMiddleware(contextSvc portssvc.ContextSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			AbortWithError(c, apperrors.NewUnauthorizedError("authentication required"))
			return
		}

		raw := c.GetHeader(LedgerContextHeader)
		if raw == "" {
			raw = c.Query(LedgerContextQueryParam)
		}
		actx, err := domain.ParseSelection(raw)
		if err != nil {
			AbortWithError(c, fmt.Errorf("%w: %w", apperrors.ErrValidation, err))
			return
		}

		if _, err := contextSvc.Resolve(c.Request.Context(), userID, actx); err != nil {
			logger.Warn("Ledger context rejected", slog.String("context", actx.String()), slog.String("error", err.Error()))
			AbortWithError(c, err)
			return
		}

		ctx := context.WithValue(c.Request.Context(), ledgerContextKey, actx)
		ctx = WithLogger(ctx, logger.With(slog.String("ledger_context", actx.String())))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
