package dto

import "github.com/Sergiotsk/TecFlow/internal/model"

type SaveQuoteRequest struct {
	Quote model.QuoteData `json:"quote" validate:"required"`
}

type SaveReportRequest struct {
	Report model.ReportData `json:"report" validate:"required"`
}

type DocumentListResponse struct {
	Quotes  []model.SavedQuote  `json:"quotes"`
	Reports []model.SavedReport `json:"reports"`
}

type ExportPDFResponse struct {
	Path string `json:"path"`
}

// BackupEnvelope is the full-state export: everything the app persists, in
// one JSON document. Version gates future format changes on import.
type BackupEnvelope struct {
	Quotes     []model.SavedQuote     `json:"quotes"`
	Reports    []model.SavedReport    `json:"reports"`
	Settings   model.BusinessSettings `json:"businessSettings"`
	Products   []model.Product        `json:"presets"`
	Clients    []model.Client         `json:"clients"`
	ExportDate string                 `json:"exportDate"`
	Version    string                 `json:"version"`
}
