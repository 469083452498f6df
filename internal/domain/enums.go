package domain

// ProductStatus is the Shopify product status enum.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// IsValid reports whether the status is one Shopify accepts. The API layer
// does not reject invalid values locally; upstream owns validation. This is
// here for callers (CLI, panel) that want to warn early.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return true
	}
	return false
}
