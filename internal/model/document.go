package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one row of a quote. It starts as a detached copy of a Product
// (no live link back to the catalog) and is independently editable.
type LineItem struct {
	ID          string          `json:"id"`
	Type        ItemType        `json:"type"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineItemFromProduct builds the initial quote row for a selected catalog
// entry. The copy carries no product reference: later catalog changes never
// touch an existing document.
func LineItemFromProduct(id string, p Product, quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}
	return LineItem{
		ID:          id,
		Type:        p.Type,
		Description: p.Description,
		Quantity:    quantity,
		UnitPrice:   p.UnitPrice,
	}
}

// QuoteData is a business quote. Locked documents reject further saves.
type QuoteData struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`       // yyyy-mm-dd
	ValidUntil    string     `json:"validUntil"` // yyyy-mm-dd
	ClientName    string     `json:"clientName"`
	ClientAddress string     `json:"clientAddress"`
	ClientTaxID   string     `json:"clientId"`
	Items         []LineItem `json:"items"`
	Notes         string     `json:"notes"`
	// TaxRate is a percentage applied on the subtotal.
	TaxRate               decimal.Decimal `json:"taxRate"`
	Currency              string          `json:"currency"`
	MaterialsSectionTitle string          `json:"materialsSectionTitle,omitempty"`
	Locked                bool            `json:"locked,omitempty"`
}

func (q QuoteData) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range q.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (q QuoteData) TaxAmount() decimal.Decimal {
	return q.Subtotal().Mul(q.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
}

func (q QuoteData) Total() decimal.Decimal {
	return q.Subtotal().Add(q.TaxAmount())
}

// ReportData is a technical service report.
type ReportData struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	ClientName      string `json:"clientName"`
	DeviceType      string `json:"deviceType"`
	SerialNumber    string `json:"serialNumber"`
	ReportedIssue   string `json:"reportedIssue"`
	Diagnosis       string `json:"diagnosis"`
	WorkPerformed   string `json:"workPerformed"`
	Recommendations string `json:"recommendations"`
	Locked          bool   `json:"locked,omitempty"`
}

// SavedQuote / SavedReport add persistence timestamps: SavedAt is set once on
// first save, LastModified on every save.
type SavedQuote struct {
	QuoteData
	SavedAt      time.Time `json:"savedAt"`
	LastModified time.Time `json:"lastModified"`
}

type SavedReport struct {
	ReportData
	SavedAt      time.Time `json:"savedAt"`
	LastModified time.Time `json:"lastModified"`
}
