package infra

// pdf.go — A4 document rendering for quotes and service reports using
// go-pdf/fpdf. Layout:
//   - Business header (name, contact lines) with a brand-colored rule
//   - Document number and dates
//   - Client block
//   - Quotes: item table split by type (services, then materials), tax line,
//     bold total
//   - Reports: labeled free-text sections
//   - Final message footer
//
// Output files are written to storagePath/{presupuesto,informe}_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

const (
	pageMargin = 15.0
	contentW   = 210 - 2*pageMargin // A4 width minus margins
)

// GenerateQuotePDF renders a quote and returns the absolute path of the file.
func GenerateQuotePDF(q *model.SavedQuote, biz model.BusinessSettings, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("presupuesto_%s.pdf", q.ID))

	pdf := newDocument(biz, "PRESUPUESTO", q.ID)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha: "+q.Date, "", 1, "L", false, 0, "")
	if q.ValidUntil != "" {
		pdf.CellFormat(contentW, 5, "Válido hasta: "+q.ValidUntil, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	clientBlock(pdf, q.ClientName, q.ClientAddress, q.ClientTaxID)

	currency := q.Currency
	if currency == "" {
		currency = "$"
	}

	services, materials := splitItems(q.Items)
	if len(services) > 0 {
		itemTable(pdf, "Mano de obra / Servicios", services, currency)
	}
	if len(materials) > 0 {
		title := q.MaterialsSectionTitle
		if title == "" {
			title = "Materiales"
		}
		itemTable(pdf, title, materials, currency)
	}

	// Totals, right-aligned under the table.
	labelW := contentW * 0.75
	valueW := contentW * 0.25

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, currency+" "+q.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
	if !q.TaxRate.IsZero() {
		pdf.CellFormat(labelW, 6, fmt.Sprintf("Impuestos (%s%%):", q.TaxRate.String()), "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, currency+" "+q.TaxAmount().StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 8, "TOTAL:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 8, currency+" "+q.Total().StringFixed(2), "T", 1, "R", false, 0, "")

	if q.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, "Notas", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 4.5, q.Notes, "", "L", false)
	}

	footer(pdf, biz)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateReportPDF renders a technical service report.
func GenerateReportPDF(r *model.SavedReport, biz model.BusinessSettings, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("informe_%s.pdf", r.ID))

	pdf := newDocument(biz, "INFORME TÉCNICO", r.ID)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha: "+r.Date, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	clientBlock(pdf, r.ClientName, "", "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Equipo", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, r.DeviceType, "", 1, "L", false, 0, "")
	if r.SerialNumber != "" {
		pdf.CellFormat(contentW, 5, "N° de serie: "+r.SerialNumber, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	reportSection(pdf, "Falla reportada", r.ReportedIssue)
	reportSection(pdf, "Diagnóstico", r.Diagnosis)
	reportSection(pdf, "Trabajo realizado", r.WorkPerformed)
	reportSection(pdf, "Recomendaciones", r.Recommendations)

	footer(pdf, biz)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// newDocument starts an A4 page with the shared business header.
func newDocument(biz model.BusinessSettings, title, docID string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, biz.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, line := range []string{biz.Address, biz.Phone, biz.Email, biz.Website} {
		if line != "" {
			pdf.CellFormat(contentW, 4, line, "", 1, "L", false, 0, "")
		}
	}

	r, g, b := hexColor(biz.BrandColor)
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(0.8)
	pdf.Line(pageMargin, pdf.GetY()+2, 210-pageMargin, pdf.GetY()+2)
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("%s N° %s", title, docID), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)

	return pdf
}

func clientBlock(pdf *fpdf.Fpdf, name, address, taxID string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Cliente", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, name, "", 1, "L", false, 0, "")
	if address != "" {
		pdf.CellFormat(contentW, 5, address, "", 1, "L", false, 0, "")
	}
	if taxID != "" {
		pdf.CellFormat(contentW, 5, "CUIT/DNI: "+taxID, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func itemTable(pdf *fpdf.Fpdf, title string, items []model.LineItem, currency string) {
	col1 := contentW * 0.55 // description
	col2 := contentW * 0.10 // qty
	col3 := contentW * 0.175
	col4 := contentW * 0.175

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Descripción", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "P. Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, it := range items {
		pdf.CellFormat(col1, 5.5, it.Description, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5.5, strconv.Itoa(it.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5.5, currency+" "+it.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5.5, currency+" "+it.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
}

func reportSection(pdf *fpdf.Fpdf, title, body string) {
	if body == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 4.5, body, "", "L", false)
	pdf.Ln(3)
}

func footer(pdf *fpdf.Fpdf, biz model.BusinessSettings) {
	msg := biz.FinalMessage
	if msg == "" && biz.DefaultFooter == "" {
		return
	}
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	if biz.DefaultFooter != "" {
		pdf.MultiCell(contentW, 4, biz.DefaultFooter, "", "C", false)
	}
	if msg != "" {
		pdf.MultiCell(contentW, 4, msg, "", "C", false)
	}
}

func splitItems(items []model.LineItem) (services, materials []model.LineItem) {
	for _, it := range items {
		if it.Type == model.ItemService {
			services = append(services, it)
		} else {
			materials = append(materials, it)
		}
	}
	return services, materials
}

// hexColor parses "#rrggbb"; malformed values fall back to a neutral slate.
func hexColor(s string) (int, int, int) {
	if len(s) == 7 && s[0] == '#' {
		r, err1 := strconv.ParseInt(s[1:3], 16, 32)
		g, err2 := strconv.ParseInt(s[3:5], 16, 32)
		b, err3 := strconv.ParseInt(s[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return int(r), int(g), int(b)
		}
	}
	return 71, 85, 105
}
