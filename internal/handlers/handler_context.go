package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/gin-gonic/gin"
)

type contextHandler struct {
	contextService portssvc.ContextSvc
}

func registerContextRoutes(rg *gin.RouterGroup, contextService portssvc.ContextSvc) {
	h := &contextHandler{contextService: contextService}
	rg.POST("/context/switch", h.switchContext)
}

// switchContext godoc
// @Summary Switch accounting context
// @Description Checks access to the selected ledger. Switching to personal creates the personal cash and equity accounts on first use.
// @Description The returned header value is what ledger requests send in X-Ledger-Context.
// @Tags context
// @Accept json
// @Produce json
// @Param request body dto.SwitchContextRequest true "Selection"
// @Success 200 {object} dto.ContextResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /context/switch [post]
func (h *contextHandler) switchContext(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.SwitchContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sw, err := h.contextService.Switch(c.Request.Context(), userID, req.ToContext())
	if err != nil {
		respondError(c, err, "Failed to switch context")
		return
	}

	c.JSON(http.StatusOK, dto.ToContextResponse(sw))
}
