package domain

// Product is a transient copy of a Shopify product. The store is the system
// of record; instances are fetched per page and discarded on navigation.
type Product struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Handle  string        `json:"handle"`
	Status  ProductStatus `json:"status"`
	Tags    []string      `json:"tags"`
	Image   *Image        `json:"image,omitempty"`
	Variant *Variant      `json:"variant,omitempty"`
}

// Image is a product cover image reference.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// Variant is the product's primary variant. Price is the upstream decimal
// string and is never parsed locally.
type Variant struct {
	ID      string  `json:"id"`
	Price   string  `json:"price"`
	Barcode *string `json:"barcode,omitempty"`
}

// PageInfo carries the upstream cursor. EndCursor is opaque and must be
// passed back unmodified to fetch the next page.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// UserError is a field-level validation error reported by the Shopify
// Admin API inside an otherwise successful mutation response.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
