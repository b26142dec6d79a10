// Package importer turns heterogeneous price-list sources — spreadsheet
// grids and AI extraction results — into the uniform record shape the
// reconciler consumes. Both paths share the same price parsing and row
// validation, so numeric semantics do not depend on how a list arrived.
package importer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/Sergiotsk/TecFlow/internal/model"
	"github.com/Sergiotsk/TecFlow/internal/pricing"
)

var (
	// ErrEmptyGrid: the file decoded to fewer than a header row plus one
	// data row.
	ErrEmptyGrid = errors.New("importer: archivo vacío o sin datos")
	// ErrNoRecords: every data row was skipped (empty description or
	// unparseable price).
	ErrNoRecords = errors.New("importer: no se encontraron productos válidos para importar")
)

// HeaderError reports that the required columns could not be resolved.
// It carries the headers actually seen so the user can fix the file.
type HeaderError struct {
	Seen []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("importer: no se encontraron las columnas requeridas (descripción y precio); encabezados: %s",
		strings.Join(e.Seen, ", "))
}

// Columns holds the resolved column index per target field; -1 means the
// field is absent. Description and Price are required.
type Columns struct {
	Description int
	Price       int
	Code        int
	Stock       int
}

// Header synonym lists, in priority order. These mirror the vocabulary of
// the supplier lists this business actually receives (Spanish headers,
// occasionally abbreviated).
var (
	descriptionKeys = []string{"descrip", "producto", "nombre", "articulo"}
	priceKeys       = []string{"precio", "valor", "costo", "importe"}
	codeKeys        = []string{"cod", "sku", "id"}
	stockKeys       = []string{"stock", "cant", "existencia"}
)

// ResolveHeaders maps the header row to column indexes. Matching is
// case-insensitive; for each field an exact header match wins over a
// substring match. Failing to resolve description or price rejects the
// whole batch — nothing is imported from a file we only half understand.
func ResolveHeaders(headers []string) (Columns, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	cols := Columns{
		Description: findColumn(normalized, descriptionKeys),
		Price:       findColumn(normalized, priceKeys),
		Code:        findColumn(normalized, codeKeys),
		Stock:       findColumn(normalized, stockKeys),
	}
	if cols.Description < 0 || cols.Price < 0 {
		return Columns{}, &HeaderError{Seen: headers}
	}
	return cols, nil
}

func findColumn(headers, keys []string) int {
	for _, k := range keys {
		for i, h := range headers {
			if h == k {
				return i
			}
		}
	}
	for _, k := range keys {
		for i, h := range headers {
			if h != "" && strings.Contains(h, k) {
				return i
			}
		}
	}
	return -1
}

// ReadRows extracts normalized records from a spreadsheet grid whose first
// row is the header. Rows with an empty description or a price that fails to
// parse are silently skipped and excluded from all counts — partial success
// is the normal case and is reported through the import summary, not as an
// error.
func ReadRows(grid [][]string) ([]model.RawRecord, error) {
	if len(grid) < 2 {
		return nil, ErrEmptyGrid
	}
	cols, err := ResolveHeaders(grid[0])
	if err != nil {
		return nil, err
	}

	var records []model.RawRecord
	for _, row := range grid[1:] {
		if len(row) == 0 {
			continue
		}
		desc := strings.TrimSpace(cell(row, cols.Description))
		cost, perr := pricing.ParsePrice(cell(row, cols.Price))
		if desc == "" || perr != nil {
			continue
		}

		rec := model.RawRecord{Description: desc, Cost: cost}
		if cols.Code >= 0 {
			rec.Code = strings.TrimSpace(cell(row, cols.Code))
		}
		if cols.Stock >= 0 {
			rec.Stock = parseStock(cell(row, cols.Stock))
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// FromExtracted maps an AI extraction result through the same parsing and
// validation rules as spreadsheet rows. Items with an empty description or
// an unparseable price are dropped; all rows dropped yields ErrNoRecords.
func FromExtracted(items []model.ExtractedItem) ([]model.RawRecord, error) {
	var records []model.RawRecord
	for _, it := range items {
		desc := strings.TrimSpace(it.Description)
		cost, err := pricing.ParsePrice(it.UnitPrice)
		if desc == "" || err != nil {
			continue
		}
		stock := it.Stock
		if stock < 0 {
			stock = 0
		}
		records = append(records, model.RawRecord{
			Description: desc,
			Cost:        cost,
			Code:        strings.TrimSpace(it.Code),
			Stock:       stock,
		})
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

var nonDigits = regexp.MustCompile(`\D`)

// parseStock strips everything non-numeric ("12 un.", "~ 5") and defaults
// to 0 on failure — stock is informative, never a reason to reject a row.
func parseStock(raw string) int {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return 0
	}
	return cast.ToInt(digits)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
