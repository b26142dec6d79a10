package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GridFromXLSX decodes the first sheet of an Excel workbook into a string
// grid. Cell values come back already formatted by excelize, so typed
// numeric cells reach the price parser as plain text.
func GridFromXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("importer: leer xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("importer: leer hoja %q: %w", sheets[0], err)
	}
	return rows, nil
}

// GridFromCSV decodes CSV bytes into a grid. Supplier exports disagree on
// the separator, so it is sniffed from the first line (';' beats ',' —
// Excel's CSV in es-AR locales uses semicolons).
func GridFromCSV(data []byte) ([][]string, error) {
	sep := ','
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first := string(data[:i])
		if strings.Count(first, ";") > strings.Count(first, ",") {
			sep = ';'
		}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer: leer csv: %w", err)
	}
	return rows, nil
}
