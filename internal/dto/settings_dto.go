package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

type SaveBusinessSettingsRequest struct {
	Name          string `json:"name" validate:"required,min=1"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Website       string `json:"website"`
	Logo          string `json:"logo"`
	BrandColor    string `json:"brandColor"`
	DefaultFooter string `json:"defaultFooter"`
	FinalMessage  string `json:"finalMessage"`
}

type UpdateDefaultMarginRequest struct {
	Value decimal.Decimal `json:"value" validate:"min=0"`
}

type UpdateSupplierMarginRequest struct {
	Supplier string          `json:"supplier" validate:"required,min=1"`
	Value    decimal.Decimal `json:"value" validate:"min=0"`
}

type SupplierNameRequest struct {
	Supplier string `json:"supplier" validate:"required,min=1"`
}

// DeleteSupplierResponse reports the cascade: how many products went with
// the supplier. The margin entry is retained on purpose — a re-imported
// supplier regains its prior margin.
type DeleteSupplierResponse struct {
	Supplier        string `json:"supplier"`
	ProductsRemoved int    `json:"productsRemoved"`
}

type MarginSettingsResponse struct {
	Margins model.MarginSettings `json:"margins"`
}
