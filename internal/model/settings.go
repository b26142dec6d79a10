package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MarginSettings holds the markup configuration consulted on every import.
// Supplier keys are matched case-insensitively and trimmed; FrozenSuppliers
// only hides a supplier from quick-pick browsing, it never excludes its
// products from reconciliation or margin lookup.
type MarginSettings struct {
	Default         decimal.Decimal            `json:"default"`
	Suppliers       map[string]decimal.Decimal `json:"suppliers"`
	FrozenSuppliers []string                   `json:"frozenSuppliers"`
}

func DefaultMarginSettings() MarginSettings {
	return MarginSettings{
		Default:         decimal.NewFromInt(30),
		Suppliers:       map[string]decimal.Decimal{},
		FrozenSuppliers: []string{},
	}
}

// IsFrozen reports whether the supplier is hidden from quick-pick browsing.
// Names match trimmed and case-insensitively, like every other supplier
// comparison.
func (m MarginSettings) IsFrozen(supplier string) bool {
	want := strings.TrimSpace(supplier)
	for _, s := range m.FrozenSuppliers {
		if strings.EqualFold(strings.TrimSpace(s), want) {
			return true
		}
	}
	return false
}

// SupplierKey returns the stored key matching the given supplier name
// (trim + case-insensitive), or "" when no per-supplier entry exists.
func (m MarginSettings) SupplierKey(supplier string) string {
	want := strings.ToLower(strings.TrimSpace(supplier))
	for k := range m.Suppliers {
		if strings.ToLower(strings.TrimSpace(k)) == want {
			return k
		}
	}
	return ""
}

// Clone returns a deep copy so mutations never leak into a settings value
// already handed to readers.
func (m MarginSettings) Clone() MarginSettings {
	out := MarginSettings{
		Default:         m.Default,
		Suppliers:       make(map[string]decimal.Decimal, len(m.Suppliers)),
		FrozenSuppliers: append([]string(nil), m.FrozenSuppliers...),
	}
	for k, v := range m.Suppliers {
		out.Suppliers[k] = v
	}
	return out
}

// BusinessSettings is the single persisted settings blob: branding used by
// document rendering plus the margin configuration.
type BusinessSettings struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Website       string `json:"website"`
	Logo          string `json:"logo,omitempty"` // base64 PNG/JPEG
	BrandColor    string `json:"brandColor"`
	DefaultFooter string `json:"defaultFooter"`
	FinalMessage  string `json:"finalMessage"`

	Margins MarginSettings `json:"margins"`
}

func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		Name:         "Mi Negocio",
		BrandColor:   "#0ea5e9",
		FinalMessage: "Gracias por su confianza.",
		Margins:      DefaultMarginSettings(),
	}
}
