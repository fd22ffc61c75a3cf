package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/SscSPs/contas_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to ledger entries and balances.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	formatter     dto.MoneyFormatter
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, formatter dto.MoneyFormatter) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
		formatter:     formatter,
	}
}

// registerLedgerRoutes registers the ledger routes. Entries are nested under
// their bank account; reversal addresses the entry directly.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, formatter dto.MoneyFormatter) {
	h := newLedgerHandler(ledgerService, formatter)

	accounts := rg.Group("/bank-accounts/:accountID")
	{
		accounts.GET("/balance", h.getBalance)
		accounts.GET("/entries", h.listEntries)
		accounts.POST("/entries", h.postEntry)
		accounts.PUT("/opening-balance", h.resetOpeningBalance)
	}

	rg.POST("/ledger/entries/:entryID/reverse", h.reverseEntry)
}

// getBalance godoc
// @Summary Get an account balance
// @Description Computes the balance from counted ledger entries, optionally as of a date
// @Tags ledger
// @Produce json
// @Param accountID path string true "Bank account ID"
// @Param asOf query string false "Only entries dated on or before this day (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /bank-accounts/{accountID}/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	asOf, err := dto.ParseOptionalDate(params.AsOf)
	if err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	accountID := c.Param("accountID")
	balance, err := h.ledgerService.Balance(c.Request.Context(), ownerID, accountID, asOf)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}

	resp := dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
		Display:   h.formatter.Format(balance),
	}
	if asOf != nil {
		d := dto.NewDate(*asOf)
		resp.AsOf = &d
	}
	c.JSON(http.StatusOK, resp)
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists an account's entries newest first, including reversal records
// @Tags ledger
// @Produce json
// @Param accountID path string true "Bank account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /bank-accounts/{accountID}/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	entries, next, err := h.ledgerService.ListEntries(c.Request.Context(), ownerID, c.Param("accountID"), params)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, next))
}

// postEntry godoc
// @Summary Post a ledger entry
// @Description Appends an inflow, outflow or opening balance to an active account
// @Tags ledger
// @Accept json
// @Produce json
// @Param accountID path string true "Bank account ID"
// @Param entry body dto.PostEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid amount, kind or inactive account"
// @Failure 404 {object} map[string]string "Account or card not found"
// @Failure 409 {object} map[string]string "Opening balance already exists"
// @Failure 503 {object} map[string]string "Concurrent change, retry"
// @Security BearerAuth
// @Router /bank-accounts/{accountID}/entries [post]
func (h *ledgerHandler) postEntry(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	entry, err := h.ledgerService.Post(c.Request.Context(), ownerID, c.Param("accountID"), req)
	if err != nil {
		respondError(c, err, "Failed to post ledger entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Ledger entry posted",
		slog.String("entry_id", entry.EntryID), slog.String("kind", string(entry.Kind)))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// resetOpeningBalance godoc
// @Summary Replace the opening balance
// @Description Reverses the current opening balance, if any, and posts a new one atomically
// @Tags ledger
// @Accept json
// @Produce json
// @Param accountID path string true "Bank account ID"
// @Param openingBalance body dto.OpeningBalanceRequest true "New opening balance"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid amount or inactive account"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /bank-accounts/{accountID}/opening-balance [put]
func (h *ledgerHandler) resetOpeningBalance(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.OpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	entry, err := h.ledgerService.ResetOpeningBalance(c.Request.Context(), ownerID, c.Param("accountID"), req)
	if err != nil {
		respondError(c, err, "Failed to reset opening balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a ledger entry
// @Description Flags the entry as reversed and appends a reversal record
// @Tags ledger
// @Produce json
// @Param entryID path string true "Ledger entry ID"
// @Success 201 {object} dto.LedgerEntryResponse "The reversal record"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Already reversed or not reversible"
// @Security BearerAuth
// @Router /ledger/entries/{entryID}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	entryID := c.Param("entryID")
	record, err := h.ledgerService.Reverse(c.Request.Context(), ownerID, entryID)
	if err != nil {
		respondError(c, err, "Failed to reverse ledger entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Ledger entry reversed",
		slog.String("entry_id", entryID), slog.String("reversal_id", record.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(record))
}
