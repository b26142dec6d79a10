package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/infra"
	"github.com/Sergiotsk/TecFlow/internal/model"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

var (
	ErrDocumentNotFound = errors.New("documento no encontrado")
	// ErrDocumentLocked rejects writes to a document that was already
	// exported. Exported documents are what the client received; they
	// never change afterwards.
	ErrDocumentLocked = errors.New("el documento está bloqueado y no puede modificarse")
)

// DocumentService manages saved quotes and service reports: save with lock
// enforcement, listing, deletion and PDF export. Exporting locks the
// document.
type DocumentService interface {
	List(ctx context.Context) (*dto.DocumentListResponse, error)
	SaveQuote(ctx context.Context, q model.QuoteData) (*model.SavedQuote, error)
	SaveReport(ctx context.Context, r model.ReportData) (*model.SavedReport, error)
	DeleteQuote(ctx context.Context, id string) error
	DeleteReport(ctx context.Context, id string) error
	ExportQuotePDF(ctx context.Context, id string) (string, error)
	ExportReportPDF(ctx context.Context, id string) (string, error)
}

type documentService struct {
	repo         repository.DocumentRepository
	settingsRepo repository.SettingsRepository
	pdfPath      string
	mu           sync.Mutex
}

func NewDocumentService(repo repository.DocumentRepository, settingsRepo repository.SettingsRepository, pdfPath string) DocumentService {
	return &documentService{repo: repo, settingsRepo: settingsRepo, pdfPath: pdfPath}
}

func (s *documentService) List(ctx context.Context) (*dto.DocumentListResponse, error) {
	quotes, err := s.repo.LoadQuotes(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.repo.LoadReports(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentListResponse{Quotes: quotes, Reports: reports}, nil
}

func (s *documentService) SaveQuote(ctx context.Context, q model.QuoteData) (*model.SavedQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.repo.LoadQuotes(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	for i := range quotes {
		if quotes[i].ID != q.ID {
			continue
		}
		if quotes[i].Locked {
			return nil, ErrDocumentLocked
		}
		// A save never unlocks: the flag is owned by the export path.
		q.Locked = quotes[i].Locked
		quotes[i].QuoteData = q
		quotes[i].LastModified = now
		if err := s.repo.ReplaceQuotes(ctx, quotes); err != nil {
			return nil, err
		}
		return &quotes[i], nil
	}

	saved := model.SavedQuote{QuoteData: q, SavedAt: now, LastModified: now}
	quotes = append(quotes, saved)
	if err := s.repo.ReplaceQuotes(ctx, quotes); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *documentService) SaveReport(ctx context.Context, r model.ReportData) (*model.SavedReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.repo.LoadReports(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	for i := range reports {
		if reports[i].ID != r.ID {
			continue
		}
		if reports[i].Locked {
			return nil, ErrDocumentLocked
		}
		r.Locked = reports[i].Locked
		reports[i].ReportData = r
		reports[i].LastModified = now
		if err := s.repo.ReplaceReports(ctx, reports); err != nil {
			return nil, err
		}
		return &reports[i], nil
	}

	saved := model.SavedReport{ReportData: r, SavedAt: now, LastModified: now}
	reports = append(reports, saved)
	if err := s.repo.ReplaceReports(ctx, reports); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *documentService) DeleteQuote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.repo.LoadQuotes(ctx)
	if err != nil {
		return err
	}
	for i := range quotes {
		if quotes[i].ID == id {
			quotes = append(quotes[:i], quotes[i+1:]...)
			return s.repo.ReplaceQuotes(ctx, quotes)
		}
	}
	return ErrDocumentNotFound
}

func (s *documentService) DeleteReport(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.repo.LoadReports(ctx)
	if err != nil {
		return err
	}
	for i := range reports {
		if reports[i].ID == id {
			reports = append(reports[:i], reports[i+1:]...)
			return s.repo.ReplaceReports(ctx, reports)
		}
	}
	return ErrDocumentNotFound
}

// ExportQuotePDF renders the quote and locks it. The lock is persisted
// before returning so a crash after export can never leave an exported
// quote editable.
func (s *documentService) ExportQuotePDF(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.repo.LoadQuotes(ctx)
	if err != nil {
		return "", err
	}
	idx := -1
	for i := range quotes {
		if quotes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", ErrDocumentNotFound
	}

	biz, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	path, err := infra.GenerateQuotePDF(&quotes[idx], biz, s.pdfPath)
	if err != nil {
		return "", err
	}

	if !quotes[idx].Locked {
		quotes[idx].Locked = true
		if err := s.repo.ReplaceQuotes(ctx, quotes); err != nil {
			return "", err
		}
	}
	return path, nil
}

func (s *documentService) ExportReportPDF(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.repo.LoadReports(ctx)
	if err != nil {
		return "", err
	}
	idx := -1
	for i := range reports {
		if reports[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", ErrDocumentNotFound
	}

	biz, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	path, err := infra.GenerateReportPDF(&reports[idx], biz, s.pdfPath)
	if err != nil {
		return "", err
	}

	if !reports[idx].Locked {
		reports[idx].Locked = true
		if err := s.repo.ReplaceReports(ctx, reports); err != nil {
			return "", err
		}
	}
	return path, nil
}
