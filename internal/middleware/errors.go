package middleware

import (
	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// AbortWithError stops the chain with the JSON error shape every endpoint uses.
func AbortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
		"error": apperrors.PublicMessage(err),
		"code":  apperrors.KindOf(err),
	})
}
