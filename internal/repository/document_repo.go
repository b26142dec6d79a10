package repository

import (
	"context"
	"errors"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

// DocumentRepository persists saved quotes and reports, each collection as
// one blob. The service layer owns timestamps and lock semantics; this
// layer only loads and replaces.
type DocumentRepository interface {
	LoadQuotes(ctx context.Context) ([]model.SavedQuote, error)
	ReplaceQuotes(ctx context.Context, quotes []model.SavedQuote) error
	LoadReports(ctx context.Context) ([]model.SavedReport, error)
	ReplaceReports(ctx context.Context, reports []model.SavedReport) error
}

type documentRepo struct{ store Store }

func NewDocumentRepository(store Store) DocumentRepository {
	return &documentRepo{store: store}
}

func (r *documentRepo) LoadQuotes(ctx context.Context) ([]model.SavedQuote, error) {
	var quotes []model.SavedQuote
	err := r.store.Load(ctx, keyQuotes, &quotes)
	if errors.Is(err, ErrKeyNotFound) {
		return []model.SavedQuote{}, nil
	}
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *documentRepo) ReplaceQuotes(ctx context.Context, quotes []model.SavedQuote) error {
	return r.store.Save(ctx, keyQuotes, quotes)
}

func (r *documentRepo) LoadReports(ctx context.Context) ([]model.SavedReport, error) {
	var reports []model.SavedReport
	err := r.store.Load(ctx, keyReports, &reports)
	if errors.Is(err, ErrKeyNotFound) {
		return []model.SavedReport{}, nil
	}
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *documentRepo) ReplaceReports(ctx context.Context, reports []model.SavedReport) error {
	return r.store.Save(ctx, keyReports, reports)
}
