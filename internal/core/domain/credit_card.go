package domain

import "github.com/shopspring/decimal"

// CreditCard is a card payments can be attributed to.
// CreditLimit is optional; utilization is only reported when it is set.
type CreditCard struct {
	CardID      string           `json:"cardID"`
	OwnerID     string           `json:"ownerID"`
	Name        string           `json:"name"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	IsActive    bool             `json:"isActive"`
	AuditFields
}
