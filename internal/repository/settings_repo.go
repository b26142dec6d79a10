package repository

import (
	"context"
	"errors"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

// SettingsRepository persists the single business-settings blob (branding +
// margin configuration). First read returns defaults.
type SettingsRepository interface {
	Load(ctx context.Context) (model.BusinessSettings, error)
	Save(ctx context.Context, s model.BusinessSettings) error
}

type settingsRepo struct{ store Store }

func NewSettingsRepository(store Store) SettingsRepository {
	return &settingsRepo{store: store}
}

func (r *settingsRepo) Load(ctx context.Context) (model.BusinessSettings, error) {
	var s model.BusinessSettings
	err := r.store.Load(ctx, keyBusinessSettings, &s)
	if errors.Is(err, ErrKeyNotFound) {
		return model.DefaultBusinessSettings(), nil
	}
	if err != nil {
		return model.BusinessSettings{}, err
	}
	// Settings written by older versions may lack the margin block. A zero
	// default is never a real configuration, it means the block was absent.
	if s.Margins.Default.IsZero() {
		s.Margins.Default = model.DefaultMarginSettings().Default
	}
	if s.Margins.Suppliers == nil {
		s.Margins.Suppliers = model.DefaultMarginSettings().Suppliers
	}
	if s.Margins.FrozenSuppliers == nil {
		s.Margins.FrozenSuppliers = []string{}
	}
	return s, nil
}

func (r *settingsRepo) Save(ctx context.Context, s model.BusinessSettings) error {
	return r.store.Save(ctx, keyBusinessSettings, s)
}
