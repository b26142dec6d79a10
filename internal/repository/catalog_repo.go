package repository

import (
	"context"
	"errors"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

// CatalogRepository reads and replaces the product catalog as one
// collection. Imports are committed as a full replacement — there is no
// partial write, which keeps an import batch atomic at this boundary.
type CatalogRepository interface {
	Load(ctx context.Context) ([]model.Product, error)
	Replace(ctx context.Context, products []model.Product) error
}

type catalogRepo struct{ store Store }

func NewCatalogRepository(store Store) CatalogRepository {
	return &catalogRepo{store: store}
}

func (r *catalogRepo) Load(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.store.Load(ctx, keyProducts, &products)
	if errors.Is(err, ErrKeyNotFound) {
		return []model.Product{}, nil
	}
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *catalogRepo) Replace(ctx context.Context, products []model.Product) error {
	return r.store.Save(ctx, keyProducts, products)
}
