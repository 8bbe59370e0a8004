package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/voucher-service/internal/domain"
	"github.com/spec-kit/voucher-service/internal/repository"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// CompanyInput describes a company create or update. Logo path is an opaque
// reference into external object storage.
type CompanyInput struct {
	Name         string
	TaxID        string
	Address      string
	ContactName  string
	ContactEmail string
	ContactPhone string
	LogoPath     *string
}

// CompanyService maintains the employer registry.
type CompanyService struct {
	companies repository.CompanyRepository
	workers   repository.WorkerRepository
}

// NewCompanyService constructs the service.
func NewCompanyService(companies repository.CompanyRepository, workers repository.WorkerRepository) *CompanyService {
	return &CompanyService{companies: companies, workers: workers}
}

// List returns all companies ordered by name.
func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return companies, nil
}

// Create registers a company.
func (s *CompanyService) Create(ctx context.Context, input CompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	company := &domain.Company{
		Name:         name,
		TaxID:        strings.TrimSpace(input.TaxID),
		Address:      strings.TrimSpace(input.Address),
		ContactName:  strings.TrimSpace(input.ContactName),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		LogoPath:     input.LogoPath,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.NewConflict("company name already registered", map[string]any{"name": name})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return company, nil
}

// Update rewrites a company record; a nil logo path keeps the stored one.
func (s *CompanyService) Update(ctx context.Context, id int64, input CompanyInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	company := &domain.Company{
		ID:           id,
		Name:         name,
		TaxID:        strings.TrimSpace(input.TaxID),
		Address:      strings.TrimSpace(input.Address),
		ContactName:  strings.TrimSpace(input.ContactName),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		LogoPath:     input.LogoPath,
	}
	if err := s.companies.Update(ctx, company); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("company", map[string]any{"id": id})
		}
		return apperrors.NewStorageUnavailable(err)
	}
	return nil
}

// Delete removes a company and cascades to its workers, so they disappear
// from the directory and stop being able to order.
func (s *CompanyService) Delete(ctx context.Context, id int64) (int64, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.NewNotFound("company", map[string]any{"id": id})
		}
		return 0, apperrors.NewStorageUnavailable(err)
	}

	removedWorkers, err := s.workers.DeleteByCompany(ctx, company.Name)
	if err != nil {
		return 0, apperrors.NewStorageUnavailable(err)
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return removedWorkers, apperrors.NewNotFound("company", map[string]any{"id": id})
		}
		return removedWorkers, apperrors.NewStorageUnavailable(err)
	}
	return removedWorkers, nil
}
