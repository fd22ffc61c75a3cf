package domain

// Vendor is a payee bills are owed to. Category drives the category breakdown report.
type Vendor struct {
	VendorID string `json:"vendorID"`
	OwnerID  string `json:"ownerID"`
	Name     string `json:"name"`
	Category string `json:"category"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// UncategorizedLabel is reported for bills whose vendor has no category.
const UncategorizedLabel = "Uncategorized"
