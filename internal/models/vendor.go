package models

import "github.com/shopspring/decimal"

// Vendor is a row of the vendors table.
type Vendor struct {
	VendorID string `db:"vendor_id"`
	OwnerID  string `db:"owner_id"`
	Name     string `db:"name"`
	Category string `db:"category"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// CreditCard is a row of the credit_cards table.
type CreditCard struct {
	CardID      string           `db:"card_id"`
	OwnerID     string           `db:"owner_id"`
	Name        string           `db:"name"`
	CreditLimit *decimal.Decimal `db:"credit_limit"` // Nullable
	IsActive    bool             `db:"is_active"`
	AuditFields
}
