// Package pricing implements the margin engine: price text normalization,
// per-supplier markup resolution, and catalog reconciliation of import
// batches. Everything here is pure computation over in-memory values; the
// service layer owns persistence and locking.
package pricing

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ErrNotANumber marks a price cell that is empty or non-numeric after
// stripping. Callers must skip the row — defaulting to zero would silently
// import free or miscosted items.
var ErrNotANumber = errors.New("pricing: el valor no es un número")

// Supplier lists mix currency symbols, unit suffixes ("c/u") and stray
// letters into price cells; everything except digits and separators goes.
var priceJunk = regexp.MustCompile(`[$\sA-Za-z]`)

// dotGrouped matches dot-separated thousands groups ("50.000", "1.200.300").
var dotGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// ParsePrice normalizes heterogeneous price text into a decimal cost.
// Separator heuristic: the rightmost of comma/dot is the decimal separator
// when both appear; a lone comma is taken as decimal (Latin-American
// convention — "1,200" meant as one-thousand-two-hundred is a known
// ambiguity this parser deliberately does not second-guess).
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := priceJunk.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" {
		return decimal.Zero, ErrNotANumber
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// 1.200,50 — dots are thousands separators, comma is decimal.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		// 1,200.50 — commas are thousands separators.
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		// Only commas present: comma as decimal separator.
		s = strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && dotGrouped.MatchString(s):
		// Only dots, in groups of three: thousands separators ("50.000").
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	return d, nil
}

// ParsePriceValue accepts cell values that may already be numeric (typed
// spreadsheet cells, JSON numbers) and routes everything else through
// ParsePrice.
func ParsePriceValue(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, ErrNotANumber
	case decimal.Decimal:
		return n, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		return ParsePrice(n)
	default:
		return ParsePrice(cast.ToString(v))
	}
}
