package handlers

import (
	"net/http"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/gin-gonic/gin"
)

// personalHandler serves the personal finance features. They always act on the caller's personal ledger.
type personalHandler struct {
	personalService portssvc.PersonalFinanceSvc
	budgetService   portssvc.BudgetSvc
}

func registerPersonalRoutes(rg *gin.RouterGroup, personalService portssvc.PersonalFinanceSvc, budgetService portssvc.BudgetSvc) {
	h := &personalHandler{personalService: personalService, budgetService: budgetService}

	personal := rg.Group("/personal")
	{
		personal.GET("/income-categories", h.listIncomeCategories)
		personal.POST("/income", h.recordIncome)
		personal.GET("/income", h.listIncome)
		personal.GET("/summary", h.summary)
		personal.GET("/budget", h.getBudget)
		personal.PUT("/budget", h.replaceBudget)
	}
}

// listIncomeCategories godoc
// @Summary List income categories
// @Tags personal
// @Produce json
// @Success 200 {array} domain.IncomeCategory
// @Security BearerAuth
// @Router /personal/income-categories [get]
func (h *personalHandler) listIncomeCategories(c *gin.Context) {
	c.JSON(http.StatusOK, domain.IncomeCategories)
}

// recordIncome godoc
// @Summary Record personal income
// @Description Posts debit cash / credit the category's income account, creating both accounts on first use.
// @Tags personal
// @Accept json
// @Produce json
// @Param income body dto.RecordIncomeRequest true "Income"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Unknown category or non-positive amount"
// @Security BearerAuth
// @Router /personal/income [post]
func (h *personalHandler) recordIncome(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.RecordIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.personalService.RecordIncome(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to record income")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listIncome godoc
// @Summary List personal income
// @Tags personal
// @Produce json
// @Param limit query int false "Page size (default 100, max 500)"
// @Success 200 {object} dto.ListIncomeResponse
// @Security BearerAuth
// @Router /personal/income [get]
func (h *personalHandler) listIncome(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListIncomeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	records, err := h.personalService.ListIncome(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list income")
		return
	}
	if records == nil {
		records = []domain.IncomeRecord{}
	}

	c.JSON(http.StatusOK, dto.ListIncomeResponse{Income: records})
}

// summary godoc
// @Summary Personal summary
// @Description Cash balance, posted income per category and the active budget.
// @Tags personal
// @Produce json
// @Success 200 {object} domain.PersonalSummary
// @Security BearerAuth
// @Router /personal/summary [get]
func (h *personalHandler) summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	summary, err := h.personalService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build personal summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getBudget godoc
// @Summary Get the active budget
// @Description Returns {"budget": null} when no readable budget exists.
// @Tags personal
// @Produce json
// @Success 200 {object} dto.BudgetResponse
// @Security BearerAuth
// @Router /personal/budget [get]
func (h *personalHandler) getBudget(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	active, err := h.budgetService.GetActiveBudget(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get active budget")
		return
	}

	c.JSON(http.StatusOK, dto.BudgetResponse{Budget: active})
}

// replaceBudget godoc
// @Summary Replace the active budget
// @Description Voids every posted budget of the caller and posts the new one in a single transaction.
// @Tags personal
// @Accept json
// @Produce json
// @Param budget body dto.SaveBudgetRequest true "Budget"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /personal/budget [put]
func (h *personalHandler) replaceBudget(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.SaveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	active, err := h.budgetService.ReplaceActiveBudget(c.Request.Context(), userID, req.ToBudget())
	if err != nil {
		respondError(c, err, "Failed to replace budget")
		return
	}

	c.JSON(http.StatusOK, dto.BudgetResponse{Budget: active})
}
