package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType distinguishes billable services from physical materials.
// Imports always produce material entries; services are created by hand.
type ItemType string

const (
	ItemService  ItemType = "service"
	ItemMaterial ItemType = "material"
)

// Product is a catalog entry. CostPrice is the supplier-quoted cost and
// UnitPrice the sale price; a reconciliation pass recomputes UnitPrice from
// CostPrice whenever the cost changes, so manual price edits do not survive
// the next import of the same supplier list.
type Product struct {
	ID          string          `json:"id"`
	Type        ItemType        `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Code        string          `json:"code,omitempty"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	// Stock is only meaningful for material-type entries.
	Stock      int    `json:"stock"`
	Supplier   string `json:"supplier,omitempty"`
	IsFavorite bool   `json:"isFavorite,omitempty"`
	// LastUpdated is set only when a reconciliation pass changes
	// cost/stock/description for this entry. Manual edits do not stamp it.
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// RawRecord is the uniform intermediate shape every ingestion path
// (spreadsheet grid or AI extraction) is normalized into before
// reconciliation. Cost has already passed the price parser.
type RawRecord struct {
	Description string
	Cost        decimal.Decimal
	Code        string
	Stock       int
}

// ExtractedItem is the wire shape returned by the AI price-list extraction
// collaborator. UnitPrice is raw text and goes through the same price parser
// as spreadsheet cells.
type ExtractedItem struct {
	Description string `json:"description"`
	UnitPrice   string `json:"unitPrice"`
	Code        string `json:"code,omitempty"`
	Stock       int    `json:"stock,omitempty"`
}
