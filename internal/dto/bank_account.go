package dto

import (
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to create a bank account.
type CreateBankAccountRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	BankLabel string `json:"bankLabel" binding:"max=100"` // Optional
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	BankLabel     string          `json:"bankLabel"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to its response DTO
func ToBankAccountResponse(acc *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		BankLabel:     acc.BankLabel,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListBankAccountResponse converts a slice of bank accounts
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}

// BalanceParams defines query parameters for balance queries.
type BalanceParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	Display   string          `json:"display"`
	AsOf      *Date           `json:"asOf,omitempty"`
}
