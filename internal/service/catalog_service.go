package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/importer"
	"github.com/Sergiotsk/TecFlow/internal/model"
	"github.com/Sergiotsk/TecFlow/internal/pricing"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

var ErrProductNotFound = errors.New("producto no encontrado")

// CatalogService is the business logic for the product catalog: CRUD,
// supplier browsing and the two import paths (spreadsheet grid and AI
// extraction). All catalog writes serialize on a mutex shared with the
// settings service, because supplier deletion also rewrites the catalog.
type CatalogService interface {
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (*model.Product, error)
	ImportGrid(ctx context.Context, grid [][]string, meta dto.ImportRequest) (*dto.ImportSummary, error)
	ImportExtracted(ctx context.Context, items []model.ExtractedItem, meta dto.ImportRequest) (*dto.ImportSummary, error)
	Suppliers(ctx context.Context) ([]dto.SupplierInfo, error)
	BuildLineItem(ctx context.Context, req dto.BuildLineItemRequest) (*model.LineItem, error)
}

type catalogService struct {
	repo         repository.CatalogRepository
	settingsRepo repository.SettingsRepository
	mu           *sync.Mutex
}

func NewCatalogService(repo repository.CatalogRepository, settingsRepo repository.SettingsRepository, mu *sync.Mutex) CatalogService {
	return &catalogService{repo: repo, settingsRepo: settingsRepo, mu: mu}
}

func (s *catalogService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]model.Product, 0, len(catalog))
	for _, p := range catalog {
		if filter.FavoritesOnly && !p.IsFavorite {
			continue
		}
		if filter.Supplier != "" && !sameSupplier(p.Supplier, filter.Supplier) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Description), search) &&
			!strings.Contains(strings.ToLower(p.Code), search) {
			continue
		}
		out = append(out, p)
	}
	return &dto.ProductListResponse{Data: out, Total: len(out)}, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	p := model.Product{
		ID:          uuid.NewString(),
		Type:        req.Type,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Code:        strings.TrimSpace(req.Code),
		CostPrice:   req.CostPrice,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		Supplier:    strings.TrimSpace(req.Supplier),
		IsFavorite:  req.IsFavorite,
	}
	catalog = append(catalog, p)

	if err := s.repo.Replace(ctx, catalog); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *catalogService) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexByID(catalog, id)
	if idx < 0 {
		return nil, ErrProductNotFound
	}

	// Manual edits never stamp LastUpdated; only reconciliation does.
	p := &catalog[idx]
	p.Type = req.Type
	p.Category = strings.TrimSpace(req.Category)
	p.Description = strings.TrimSpace(req.Description)
	p.Code = strings.TrimSpace(req.Code)
	p.CostPrice = req.CostPrice
	p.UnitPrice = req.UnitPrice
	p.Stock = req.Stock
	p.Supplier = strings.TrimSpace(req.Supplier)
	p.IsFavorite = req.IsFavorite

	if err := s.repo.Replace(ctx, catalog); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	idx := indexByID(catalog, id)
	if idx < 0 {
		return ErrProductNotFound
	}
	catalog = append(catalog[:idx], catalog[idx+1:]...)
	return s.repo.Replace(ctx, catalog)
}

func (s *catalogService) ToggleFavorite(ctx context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexByID(catalog, id)
	if idx < 0 {
		return nil, ErrProductNotFound
	}
	catalog[idx].IsFavorite = !catalog[idx].IsFavorite
	if err := s.repo.Replace(ctx, catalog); err != nil {
		return nil, err
	}
	return &catalog[idx], nil
}

func (s *catalogService) ImportGrid(ctx context.Context, grid [][]string, meta dto.ImportRequest) (*dto.ImportSummary, error) {
	records, err := importer.ReadRows(grid)
	if err != nil {
		return nil, err
	}
	return s.importRecords(ctx, records, meta)
}

func (s *catalogService) ImportExtracted(ctx context.Context, items []model.ExtractedItem, meta dto.ImportRequest) (*dto.ImportSummary, error) {
	records, err := importer.FromExtracted(items)
	if err != nil {
		return nil, err
	}
	return s.importRecords(ctx, records, meta)
}

// importRecords is the single commit point of both import paths: one
// reconciliation pass against the current catalog, then a full replacement
// write. The lock covers load-reconcile-replace so concurrent imports
// cannot interleave.
func (s *catalogService) importRecords(ctx context.Context, records []model.RawRecord, meta dto.ImportRequest) (*dto.ImportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	supplier := strings.TrimSpace(meta.Supplier)
	category := strings.TrimSpace(meta.Category)

	var result pricing.ReconcileResult
	if meta.Force {
		result = pricing.ReconcileForce(records, supplier, category, catalog, settings.Margins, time.Now())
	} else {
		result = pricing.Reconcile(records, supplier, category, catalog, settings.Margins, time.Now())
	}

	if err := s.repo.Replace(ctx, result.Catalog); err != nil {
		return nil, err
	}
	return &dto.ImportSummary{
		Supplier:  supplier,
		Category:  category,
		Added:     result.Added,
		Updated:   result.Updated,
		Unchanged: result.Unchanged,
	}, nil
}

func (s *catalogService) Suppliers(ctx context.Context) ([]dto.SupplierInfo, error) {
	catalog, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	type agg struct {
		name   string
		count  int
		latest *time.Time
	}
	byKey := map[string]*agg{}
	for _, p := range catalog {
		name := strings.TrimSpace(p.Supplier)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		a, ok := byKey[key]
		if !ok {
			a = &agg{name: name}
			byKey[key] = a
		}
		a.count++
		if p.LastUpdated != nil && (a.latest == nil || p.LastUpdated.After(*a.latest)) {
			a.latest = p.LastUpdated
		}
	}

	out := make([]dto.SupplierInfo, 0, len(byKey))
	for _, a := range byKey {
		info := dto.SupplierInfo{
			Name:     a.name,
			Margin:   pricing.ResolveMarkup(a.name, settings.Margins),
			Frozen:   settings.Margins.IsFrozen(a.name),
			Products: a.count,
		}
		if a.latest != nil {
			info.LastUpdated = a.latest.Format(time.RFC3339)
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// BuildLineItem turns a catalog entry into a detached quote row.
func (s *catalogService) BuildLineItem(ctx context.Context, req dto.BuildLineItemRequest) (*model.LineItem, error) {
	p, err := s.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	item := model.LineItemFromProduct(uuid.NewString(), *p, req.Quantity)
	return &item, nil
}

func indexByID(catalog []model.Product, id string) int {
	for i := range catalog {
		if catalog[i].ID == id {
			return i
		}
	}
	return -1
}

func sameSupplier(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
