package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// registerLedgerRoutes mounts every route that works on the selected accounting context.
// LedgerContextMiddleware rejects inaccessible contexts before any of them run.
func registerLedgerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	ledger := rg.Group("/ledger", middleware.LedgerContextMiddleware(services.Context))

	registerAccountRoutes(ledger, services.Account)
	registerJournalRoutes(ledger, services.Journal)

	h := &exportHandler{exportService: services.Export}
	ledger.GET("/export.xlsx", h.exportLedger)
}

type exportHandler struct {
	exportService portssvc.ExportSvc
}

// exportLedger godoc
// @Summary Export the ledger as a spreadsheet
// @Description Writes Entries, Lines and Balances sheets for the current context. Browsers may pass the context as ?context= instead of the header.
// @Tags ledger
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Param context query string false "personal or business:<companyID>"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/export.xlsx [get]
func (h *exportHandler) exportLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	// Buffer so a failure can still be answered with a JSON error.
	var buf bytes.Buffer
	if err := h.exportService.ExportLedger(c.Request.Context(), actx, userID, &buf); err != nil {
		respondError(c, err, "Failed to export ledger")
		return
	}

	filename := fmt.Sprintf("ledger-%s-%s.xlsx", actx.Mode, time.Now().UTC().Format("20060102"))
	logger.Info("Ledger exported", slog.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
