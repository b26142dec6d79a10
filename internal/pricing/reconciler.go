package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

// costEpsilon absorbs floating-point noise accumulated by upstream tools:
// a cost difference at or below one cent is not a price change.
var costEpsilon = decimal.NewFromFloat(0.01)

// ReconcileResult is the outcome of merging one import batch into the
// catalog. Catalog is the full replacement collection; products not touched
// by the batch pass through unchanged.
type ReconcileResult struct {
	Catalog   []model.Product
	Added     int
	Updated   int
	Unchanged int
}

// Reconcile merges a normalized batch for one supplier into the catalog.
//
// The markup is resolved once for the whole batch — all rows of one import
// share one percentage. A record matches an existing product only on
// (code, supplier) equality with a non-empty code; records are never matched
// by description alone. Matched records are overwritten (and stamped) only
// when cost, stock or description actually differ; otherwise they are left
// untouched, so re-running the same batch against its own output yields
// added=0, updated=0, unchanged=len(batch).
func Reconcile(batch []model.RawRecord, supplier, category string, catalog []model.Product, settings model.MarginSettings, now time.Time) ReconcileResult {
	return reconcile(batch, supplier, category, catalog, settings, now, false)
}

// ReconcileForce is the manual re-synchronization variant: it skips the
// unchanged short-circuit and overwrites matched records unconditionally
// (non-empty incoming description guarded). Used when a normal pass reports
// zero changes but the user suspects catalog drift.
func ReconcileForce(batch []model.RawRecord, supplier, category string, catalog []model.Product, settings model.MarginSettings, now time.Time) ReconcileResult {
	return reconcile(batch, supplier, category, catalog, settings, now, true)
}

func reconcile(batch []model.RawRecord, supplier, category string, catalog []model.Product, settings model.MarginSettings, now time.Time, force bool) ReconcileResult {
	markup := ResolveMarkup(supplier, settings)

	next := make([]model.Product, len(catalog))
	copy(next, catalog)

	res := ReconcileResult{}
	for _, rec := range batch {
		idx := matchIndex(next, rec.Code, supplier)

		if idx < 0 {
			ts := now
			next = append(next, model.Product{
				ID:          uuid.NewString(),
				Type:        model.ItemMaterial,
				Category:    category,
				Description: rec.Description,
				Code:        rec.Code,
				CostPrice:   rec.Cost,
				UnitPrice:   SalePrice(rec.Cost, markup),
				Stock:       rec.Stock,
				Supplier:    supplier,
				LastUpdated: &ts,
			})
			res.Added++
			continue
		}

		existing := next[idx]
		costChanged := rec.Cost.Sub(existing.CostPrice).Abs().GreaterThan(costEpsilon)

		if !force && !costChanged && existing.Stock == rec.Stock && existing.Description == rec.Description {
			// No timestamp bump: LastUpdated reflects actual value changes.
			res.Unchanged++
			continue
		}

		existing.CostPrice = rec.Cost
		existing.UnitPrice = SalePrice(rec.Cost, markup)
		if !force || rec.Description != "" {
			existing.Description = rec.Description
		}
		existing.Stock = rec.Stock
		ts := now
		existing.LastUpdated = &ts
		next[idx] = existing
		res.Updated++
	}

	res.Catalog = next
	return res
}

// matchIndex finds the catalog entry with the same code AND supplier.
// An empty incoming code never matches: such records are always new.
func matchIndex(catalog []model.Product, code, supplier string) int {
	if code == "" {
		return -1
	}
	for i, p := range catalog {
		if p.Code == code && p.Supplier == supplier {
			return i
		}
	}
	return -1
}
