package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/SscSPs/ledgerlite/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts of the current ledger.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.getOrCreateAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}

// getOrCreateAccount godoc
// @Summary Get or create an account by code
// @Description Returns the account with the given code, creating it when absent. A code already used with another type is a conflict.
// @Tags accounts
// @Accept json
// @Produce json
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/accounts [post]
func (h *accountHandler) getOrCreateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.GetOrCreateAccount(c.Request.Context(), actx, userID, req.ToSpec())
	if err != nil {
		respondError(c, err, "Failed to get or create account")
		return
	}

	logger.Debug("Account resolved", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the accounts of the current ledger ordered by code.
// @Tags accounts
// @Produce json
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), actx, userID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), actx, userID, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Sums posted lines of the account. The balance is positive on the account's normal side.
// @Tags accounts
// @Produce json
// @Param X-Ledger-Context header string false "personal or business:<companyID>"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/accounts/{accountID}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	userID, actx, ok := requireLedger(c)
	if !ok {
		return
	}

	balance, err := h.accountService.GetAccountBalance(c.Request.Context(), actx, userID, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to get account balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance))
}
