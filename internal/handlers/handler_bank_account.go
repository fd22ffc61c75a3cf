package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/contas_app/internal/core/domain"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/SscSPs/contas_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankAccountHandler handles HTTP requests related to bank accounts.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

// newBankAccountHandler creates a new bankAccountHandler.
func newBankAccountHandler(bs portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{
		bankAccountService: bs,
	}
}

// registerBankAccountRoutes registers routes related to bank accounts.
func registerBankAccountRoutes(rg *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(bankAccountService)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:accountID", h.getBankAccount)
		accounts.POST("/:accountID/deactivate", h.deactivateBankAccount)
		accounts.POST("/:accountID/activate", h.activateBankAccount)
	}
}

// createBankAccount godoc
// @Summary Create a bank account
// @Description Creates a new bank account for the authenticated owner
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create bank account"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Bank account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Description Lists the owner's bank accounts, active only unless includeInactive is set
// @Tags bank-accounts
// @Produce json
// @Param includeInactive query bool false "Include deactivated accounts"
// @Success 200 {array} dto.BankAccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bank accounts"
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var params dto.ListActiveParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), ownerID, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}

// getBankAccount godoc
// @Summary Get a bank account
// @Tags bank-accounts
// @Produce json
// @Param accountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{accountID} [get]
func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	account, err := h.bankAccountService.GetBankAccount(c.Request.Context(), ownerID, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deactivateBankAccount godoc
// @Summary Deactivate a bank account
// @Description Deactivated accounts keep their history but accept no new postings
// @Tags bank-accounts
// @Produce json
// @Param accountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{accountID}/deactivate [post]
func (h *bankAccountHandler) deactivateBankAccount(c *gin.Context) {
	h.setActive(c, false)
}

// activateBankAccount godoc
// @Summary Reactivate a bank account
// @Tags bank-accounts
// @Produce json
// @Param accountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{accountID}/activate [post]
func (h *bankAccountHandler) activateBankAccount(c *gin.Context) {
	h.setActive(c, true)
}

func (h *bankAccountHandler) setActive(c *gin.Context, active bool) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	accountID := c.Param("accountID")
	var (
		account *domain.BankAccount
		err     error
	)
	if active {
		account, err = h.bankAccountService.ActivateBankAccount(c.Request.Context(), ownerID, accountID)
	} else {
		account, err = h.bankAccountService.DeactivateBankAccount(c.Request.Context(), ownerID, accountID)
	}
	if err != nil {
		respondError(c, err, "Failed to update bank account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Bank account status changed",
		slog.String("account_id", accountID), slog.Bool("active", active))
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}
