package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/SscSPs/ledgerlite/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError logs err (Warn for caller mistakes, Error for storage failures) and writes it.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()))
	}
	middleware.AbortWithError(c, err)
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, fmt.Errorf("%w: invalid request format: %s", apperrors.ErrValidation, err.Error()), "Failed to bind request")
}

// requireUser returns the caller set by AuthMiddleware.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		middleware.AbortWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return "", false
	}
	return userID, true
}

// requireLedger returns the caller and the accounting context set by LedgerContextMiddleware.
func requireLedger(c *gin.Context) (string, domain.AccountingContext, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return "", domain.AccountingContext{}, false
	}
	actx, ok := middleware.GetLedgerContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Ledger context not found in request")
		middleware.AbortWithError(c, apperrors.NewValidationFailedError("ledger context is required"))
		return "", domain.AccountingContext{}, false
	}
	return userID, actx, true
}
