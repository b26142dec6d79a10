package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Type        model.ItemType  `json:"type" validate:"required,oneof=service material"`
	Category    string          `json:"category" validate:"required,min=1"`
	Description string          `json:"description" validate:"required,min=1"`
	Code        string          `json:"code"`
	CostPrice   decimal.Decimal `json:"costPrice" validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"min=0"`
	Stock       int             `json:"stock" validate:"min=0"`
	Supplier    string          `json:"supplier"`
	IsFavorite  bool            `json:"isFavorite"`
}

type UpdateProductRequest struct {
	Type        model.ItemType  `json:"type" validate:"required,oneof=service material"`
	Category    string          `json:"category" validate:"required,min=1"`
	Description string          `json:"description" validate:"required,min=1"`
	Code        string          `json:"code"`
	CostPrice   decimal.Decimal `json:"costPrice" validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"min=0"`
	Stock       int             `json:"stock" validate:"min=0"`
	Supplier    string          `json:"supplier"`
	IsFavorite  bool            `json:"isFavorite"`
}

// ImportRequest carries the batch metadata that every import needs before
// any row is processed. Force selects the manual re-synchronization pass.
type ImportRequest struct {
	Supplier string `json:"supplier" form:"supplier" validate:"required,min=1"`
	Category string `json:"category" form:"category" validate:"required,min=1"`
	Force    bool   `json:"force" form:"force"`
}

type ProductFilter struct {
	Search        string `form:"search"`
	Supplier      string `form:"supplier"`
	Category      string `form:"category"`
	FavoritesOnly bool   `form:"favorites"`
}

type BuildLineItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

// ImportSummary is what the UI renders after an import: aggregate counts
// only, never per-row detail — skipped rows are invisible by design.
type ImportSummary struct {
	Supplier  string `json:"supplier"`
	Category  string `json:"category"`
	Added     int    `json:"added"`
	Updated   int    `json:"updated"`
	Unchanged int    `json:"unchanged"`
}

// SupplierInfo powers the supplier quick-pick: configured margin, frozen
// flag and the most recent reconciliation stamp across the supplier's
// products.
type SupplierInfo struct {
	Name        string          `json:"name"`
	Margin      decimal.Decimal `json:"margin"`
	Frozen      bool            `json:"frozen"`
	Products    int             `json:"products"`
	LastUpdated string          `json:"lastUpdated,omitempty"`
}

type ProductListResponse struct {
	Data  []model.Product `json:"data"`
	Total int             `json:"total"`
}
