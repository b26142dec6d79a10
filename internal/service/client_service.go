package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/model"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

var ErrClientNotFound = errors.New("cliente no encontrado")

// ClientService manages the address book plus CSV contact import.
type ClientService interface {
	List(ctx context.Context) (*dto.ClientListResponse, error)
	Save(ctx context.Context, id string, req dto.SaveClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id string) error
	ImportCSV(ctx context.Context, data []byte) (*dto.ClientImportSummary, error)
}

type clientService struct {
	repo repository.ClientRepository
	mu   sync.Mutex
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) List(ctx context.Context) (*dto.ClientListResponse, error) {
	clients, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ClientListResponse{Data: clients, Total: len(clients)}, nil
}

// Save creates when id is empty, updates otherwise.
func (s *clientService) Save(ctx context.Context, id string, req dto.SaveClientRequest) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	c := model.Client{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		TaxID:   strings.TrimSpace(req.TaxID),
		Notes:   req.Notes,
	}

	if id == "" {
		c.ID = uuid.NewString()
		clients = append(clients, c)
		if err := s.repo.Replace(ctx, clients); err != nil {
			return nil, err
		}
		return &c, nil
	}

	for i := range clients {
		if clients[i].ID == id {
			clients[i] = c
			if err := s.repo.Replace(ctx, clients); err != nil {
				return nil, err
			}
			return &clients[i], nil
		}
	}
	return nil, ErrClientNotFound
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	for i := range clients {
		if clients[i].ID == id {
			clients = append(clients[:i], clients[i+1:]...)
			return s.repo.Replace(ctx, clients)
		}
	}
	return ErrClientNotFound
}

// ImportCSV merges a contact export into the address book. Rows without a
// name and rows duplicating an existing contact (same name, case
// insensitive) are skipped, existing entries are never overwritten.
func (s *clientService) ImportCSV(ctx context.Context, data []byte) (*dto.ClientImportSummary, error) {
	var rows []*model.Client
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(clients))
	for _, c := range clients {
		known[strings.ToLower(strings.TrimSpace(c.Name))] = true
	}

	summary := &dto.ClientImportSummary{}
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" || known[strings.ToLower(name)] {
			summary.Skipped++
			continue
		}
		known[strings.ToLower(name)] = true
		clients = append(clients, model.Client{
			ID:      uuid.NewString(),
			Name:    name,
			Address: strings.TrimSpace(row.Address),
			Phone:   strings.TrimSpace(row.Phone),
			Email:   strings.TrimSpace(row.Email),
			TaxID:   strings.TrimSpace(row.TaxID),
			Notes:   row.Notes,
		})
		summary.Added++
	}

	if summary.Added > 0 {
		if err := s.repo.Replace(ctx, clients); err != nil {
			return nil, err
		}
	}
	return summary, nil
}
