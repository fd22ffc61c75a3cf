package dto

import (
	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest defines the data needed to create a vendor.
type CreateVendorRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Category string `json:"category" binding:"max=60"`
}

// VendorResponse defines the data returned for a vendor.
type VendorResponse struct {
	VendorID string `json:"vendorID"`
	Name     string `json:"name"`
	Category string `json:"category"`
	IsActive bool   `json:"isActive"`
}

// ToVendorResponse converts a domain.Vendor to its response DTO
func ToVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{VendorID: v.VendorID, Name: v.Name, Category: v.Category, IsActive: v.IsActive}
}

// ToListVendorResponse converts a slice of vendors
func ToListVendorResponse(vendors []domain.Vendor) []VendorResponse {
	res := make([]VendorResponse, len(vendors))
	for i := range vendors {
		res[i] = ToVendorResponse(&vendors[i])
	}
	return res
}

// CreateCardRequest defines the data needed to register a credit card.
type CreateCardRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	CreditLimit *decimal.Decimal `json:"creditLimit" binding:"omitempty,money" swaggertype:"string"` // Optional
}

// CardResponse defines the data returned for a credit card.
type CardResponse struct {
	CardID      string           `json:"cardID"`
	Name        string           `json:"name"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	IsActive    bool             `json:"isActive"`
}

// ToCardResponse converts a domain.CreditCard to its response DTO
func ToCardResponse(c *domain.CreditCard) CardResponse {
	return CardResponse{CardID: c.CardID, Name: c.Name, CreditLimit: c.CreditLimit, IsActive: c.IsActive}
}

// ToListCardResponse converts a slice of cards
func ToListCardResponse(cards []domain.CreditCard) []CardResponse {
	res := make([]CardResponse, len(cards))
	for i := range cards {
		res[i] = ToCardResponse(&cards[i])
	}
	return res
}

// ListActiveParams defines the common includeInactive query parameter.
type ListActiveParams struct {
	IncludeInactive bool `form:"includeInactive"`
}
