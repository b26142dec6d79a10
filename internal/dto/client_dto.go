package dto

import "github.com/Sergiotsk/TecFlow/internal/model"

type SaveClientRequest struct {
	Name    string `json:"name" validate:"required,min=1"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	TaxID   string `json:"taxId"`
	Notes   string `json:"notes"`
}

type ClientListResponse struct {
	Data  []model.Client `json:"data"`
	Total int            `json:"total"`
}

// ClientImportSummary mirrors the catalog import summary shape: aggregate
// counts, no per-row reporting.
type ClientImportSummary struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
