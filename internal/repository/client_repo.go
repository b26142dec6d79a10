package repository

import (
	"context"
	"errors"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

// ClientRepository persists the address book as one collection blob.
type ClientRepository interface {
	Load(ctx context.Context) ([]model.Client, error)
	Replace(ctx context.Context, clients []model.Client) error
}

type clientRepo struct{ store Store }

func NewClientRepository(store Store) ClientRepository {
	return &clientRepo{store: store}
}

func (r *clientRepo) Load(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.store.Load(ctx, keyClients, &clients)
	if errors.Is(err, ErrKeyNotFound) {
		return []model.Client{}, nil
	}
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepo) Replace(ctx context.Context, clients []model.Client) error {
	return r.store.Save(ctx, keyClients, clients)
}
