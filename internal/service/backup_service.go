package service

import (
	"context"
	"errors"
	"time"

	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

const backupVersion = "1.0"

var ErrBackupVersion = errors.New("versión de respaldo no soportada")

// BackupService exports and restores the whole persisted state in a single
// JSON envelope.
type BackupService interface {
	Export(ctx context.Context) (*dto.BackupEnvelope, error)
	Restore(ctx context.Context, env dto.BackupEnvelope) error
}

type backupService struct {
	catalogRepo  repository.CatalogRepository
	settingsRepo repository.SettingsRepository
	documentRepo repository.DocumentRepository
	clientRepo   repository.ClientRepository
}

func NewBackupService(
	catalogRepo repository.CatalogRepository,
	settingsRepo repository.SettingsRepository,
	documentRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
) BackupService {
	return &backupService{
		catalogRepo:  catalogRepo,
		settingsRepo: settingsRepo,
		documentRepo: documentRepo,
		clientRepo:   clientRepo,
	}
}

func (s *backupService) Export(ctx context.Context) (*dto.BackupEnvelope, error) {
	products, err := s.catalogRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	quotes, err := s.documentRepo.LoadQuotes(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.documentRepo.LoadReports(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.BackupEnvelope{
		Quotes:     quotes,
		Reports:    reports,
		Settings:   settings,
		Products:   products,
		Clients:    clients,
		ExportDate: time.Now().Format(time.RFC3339),
		Version:    backupVersion,
	}, nil
}

// Restore replaces every collection with the envelope's contents. There is
// no merge: a restore is a full state swap.
func (s *backupService) Restore(ctx context.Context, env dto.BackupEnvelope) error {
	if env.Version != backupVersion {
		return ErrBackupVersion
	}
	if err := s.catalogRepo.Replace(ctx, env.Products); err != nil {
		return err
	}
	settings := env.Settings
	// Envelopes exported by the desktop app carry branding but no margin
	// block. Restoring one must not zero the markup configuration.
	if settings.Margins.Default.IsZero() && len(settings.Margins.Suppliers) == 0 {
		current, err := s.settingsRepo.Load(ctx)
		if err != nil {
			return err
		}
		settings.Margins = current.Margins
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return err
	}
	if err := s.documentRepo.ReplaceQuotes(ctx, env.Quotes); err != nil {
		return err
	}
	if err := s.documentRepo.ReplaceReports(ctx, env.Reports); err != nil {
		return err
	}
	return s.clientRepo.Replace(ctx, env.Clients)
}
