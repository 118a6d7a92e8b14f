package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SearchFilters describe the inputs supported by the product search.
type SearchFilters struct {
	Query        string
	CategoryID   *uuid.UUID
	Manufacturer string
}

// ProductInput carries the fields required to create a product.
type ProductInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	Manufacturer string
	CategoryID   *uuid.UUID
}

// ProductUpdate carries the optional fields of a partial product update.
type ProductUpdate struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Stock        *int
	Manufacturer *string
	CategoryID   *uuid.UUID
}
