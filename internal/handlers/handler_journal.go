package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/SscSPs/ledgerlite/internal/middleware"
	"github.com/SscSPs/ledgerlite/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// registerJournalRoutes registers journal entry routes
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	entries := rg.Group("/entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/void", h.voidEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates and posts a balanced entry. Debits must equal credits exactly and every account must belong to the current ledger.
// @Tags entries
// @Accept json
// @Produce json
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Param entry body dto.CreateEntryRequest true "Entry with at least two lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Unbalanced or malformed entry"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not in this ledger"
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// A zero date lets the service stamp the entry with its own clock.
	entry, err := h.journalService.PostEntry(c.Request.Context(), actx, userID, req.ToDraft(time.Time{}))
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first. In the personal ledger only the caller's entries are returned.
// @Tags entries
// @Produce json
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Param status query string false "POSTED or VOID"
// @Param referencePrefix query string false "Reference prefix, e.g. BUDGET-"
// @Param limit query int false "Page size (default 100, max 500)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), actx, userID, params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}

	resp := dto.ToListEntriesResponse(entries)
	resp.NextToken = pagination.NextEntryCursor(entries, pagination.ClampPageSize(params.Limit))
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Returns the entry with its lines in posting order.
// @Tags entries
// @Produce json
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), actx, userID, c.Param("entryID"))
	if err != nil {
		respondError(c, err, "Failed to get journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a journal entry
// @Description Moves a POSTED entry to VOID. Voided entries no longer count towards balances.
// @Tags entries
// @Produce json
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is already void"
// @Security BearerAuth
// @Router /ledger/entries/{entryID}/void [post]
func (h *journalHandler) voidEntry(c *gin.Context) {
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	entry, err := h.journalService.VoidEntry(c.Request.Context(), actx, userID, c.Param("entryID"))
	if err != nil {
		respondError(c, err, "Failed to void journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
