package service

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/model"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

// SettingsService manages the business-settings blob and the margin
// configuration inside it. DeleteSupplier cascades into the catalog, so
// this service shares the catalog write mutex with CatalogService.
type SettingsService interface {
	Get(ctx context.Context) (model.BusinessSettings, error)
	Save(ctx context.Context, req dto.SaveBusinessSettingsRequest) (model.BusinessSettings, error)
	Margins(ctx context.Context) (model.MarginSettings, error)
	UpdateDefaultMargin(ctx context.Context, value decimal.Decimal) (model.MarginSettings, error)
	UpdateSupplierMargin(ctx context.Context, supplier string, value decimal.Decimal) (model.MarginSettings, error)
	RemoveSupplierMargin(ctx context.Context, supplier string) (model.MarginSettings, error)
	ToggleFreeze(ctx context.Context, supplier string) (model.MarginSettings, error)
	DeleteSupplier(ctx context.Context, supplier string) (*dto.DeleteSupplierResponse, error)
}

type settingsService struct {
	repo        repository.SettingsRepository
	catalogRepo repository.CatalogRepository
	mu          *sync.Mutex
}

func NewSettingsService(repo repository.SettingsRepository, catalogRepo repository.CatalogRepository, mu *sync.Mutex) SettingsService {
	return &settingsService{repo: repo, catalogRepo: catalogRepo, mu: mu}
}

func (s *settingsService) Get(ctx context.Context) (model.BusinessSettings, error) {
	return s.repo.Load(ctx)
}

// Save replaces the branding fields only. Margin configuration has its own
// operations and survives a settings save untouched.
func (s *settingsService) Save(ctx context.Context, req dto.SaveBusinessSettingsRequest) (model.BusinessSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return model.BusinessSettings{}, err
	}

	current.Name = req.Name
	current.Email = req.Email
	current.Phone = req.Phone
	current.Address = req.Address
	current.Website = req.Website
	current.Logo = req.Logo
	current.BrandColor = req.BrandColor
	current.DefaultFooter = req.DefaultFooter
	current.FinalMessage = req.FinalMessage

	if err := s.repo.Save(ctx, current); err != nil {
		return model.BusinessSettings{}, err
	}
	return current, nil
}

func (s *settingsService) Margins(ctx context.Context) (model.MarginSettings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return model.MarginSettings{}, err
	}
	return settings.Margins, nil
}

func (s *settingsService) UpdateDefaultMargin(ctx context.Context, value decimal.Decimal) (model.MarginSettings, error) {
	return s.mutateMargins(ctx, func(m *model.MarginSettings) {
		m.Default = value
	})
}

func (s *settingsService) UpdateSupplierMargin(ctx context.Context, supplier string, value decimal.Decimal) (model.MarginSettings, error) {
	return s.mutateMargins(ctx, func(m *model.MarginSettings) {
		// Reuse the stored key when one already matches, so "ACME" and
		// "acme " never end up as two entries.
		key := m.SupplierKey(supplier)
		if key == "" {
			key = strings.TrimSpace(supplier)
		}
		m.Suppliers[key] = value
	})
}

func (s *settingsService) RemoveSupplierMargin(ctx context.Context, supplier string) (model.MarginSettings, error) {
	return s.mutateMargins(ctx, func(m *model.MarginSettings) {
		if key := m.SupplierKey(supplier); key != "" {
			delete(m.Suppliers, key)
		}
	})
}

func (s *settingsService) ToggleFreeze(ctx context.Context, supplier string) (model.MarginSettings, error) {
	return s.mutateMargins(ctx, func(m *model.MarginSettings) {
		name := strings.TrimSpace(supplier)
		for i, frozen := range m.FrozenSuppliers {
			if strings.EqualFold(frozen, name) {
				m.FrozenSuppliers = append(m.FrozenSuppliers[:i], m.FrozenSuppliers[i+1:]...)
				return
			}
		}
		m.FrozenSuppliers = append(m.FrozenSuppliers, name)
	})
}

// DeleteSupplier removes every product of the supplier from the catalog.
// The margin entry is kept on purpose: if the supplier's list is imported
// again later it picks up the configured margin instead of the default.
func (s *settingsService) DeleteSupplier(ctx context.Context, supplier string) (*dto.DeleteSupplierResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(supplier)
	kept := make([]model.Product, 0, len(catalog))
	removed := 0
	for _, p := range catalog {
		if sameSupplier(p.Supplier, name) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	if err := s.catalogRepo.Replace(ctx, kept); err != nil {
		return nil, err
	}

	// Drop the freeze flag for the deleted supplier, nothing left to hide.
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i, frozen := range settings.Margins.FrozenSuppliers {
		if strings.EqualFold(frozen, name) {
			settings.Margins.FrozenSuppliers = append(
				settings.Margins.FrozenSuppliers[:i],
				settings.Margins.FrozenSuppliers[i+1:]...)
			if err := s.repo.Save(ctx, settings); err != nil {
				return nil, err
			}
			break
		}
	}

	return &dto.DeleteSupplierResponse{Supplier: name, ProductsRemoved: removed}, nil
}

func (s *settingsService) mutateMargins(ctx context.Context, fn func(*model.MarginSettings)) (model.MarginSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.Load(ctx)
	if err != nil {
		return model.MarginSettings{}, err
	}
	margins := settings.Margins.Clone()
	fn(&margins)
	settings.Margins = margins

	if err := s.repo.Save(ctx, settings); err != nil {
		return model.MarginSettings{}, err
	}
	return margins, nil
}
