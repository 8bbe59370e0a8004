package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/voucher-service/internal/domain"
	"github.com/spec-kit/voucher-service/internal/repository"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// WorkerCreateInput describes a new directory record.
type WorkerCreateInput struct {
	IdentityKey string
	Name        string
	Company     string
	CostCenter  *string
	Tier        domain.Tier
}

// WorkerUpdateInput carries a merge-style update: nil fields keep the
// current value. The identity key is immutable and therefore absent.
type WorkerUpdateInput struct {
	Name       *string
	Company    *string
	CostCenter *string
	Tier       *domain.Tier
}

// DirectoryService manages the worker directory. The core reads it; these
// admin operations maintain it.
type DirectoryService struct {
	workers repository.WorkerRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(workers repository.WorkerRepository) *DirectoryService {
	return &DirectoryService{workers: workers}
}

// List returns all workers ordered by name.
func (s *DirectoryService) List(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return workers, nil
}

// Create registers a worker under a normalized, unique identity key.
func (s *DirectoryService) Create(ctx context.Context, input WorkerCreateInput) (*domain.Worker, error) {
	key := domain.NormalizeIdentityKey(input.IdentityKey)
	name := strings.TrimSpace(input.Name)
	company := strings.TrimSpace(input.Company)
	if key == "" || name == "" || company == "" {
		return nil, apperrors.NewValidationError("identity_key, name and company are required", nil)
	}
	tier, err := validTier(input.Tier)
	if err != nil {
		return nil, err
	}

	worker := &domain.Worker{
		IdentityKey: key,
		Name:        name,
		Company:     company,
		CostCenter:  trimmed(input.CostCenter),
		Tier:        tier,
	}
	if err := s.workers.Create(ctx, worker); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.NewConflict("identity key already registered", map[string]any{"identity_key": key})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return worker, nil
}

// Update merges the provided fields into the stored record.
func (s *DirectoryService) Update(ctx context.Context, id int64, input WorkerUpdateInput) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"id": id})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}

	if input.Name != nil {
		worker.Name = strings.TrimSpace(*input.Name)
	}
	if input.Company != nil {
		worker.Company = strings.TrimSpace(*input.Company)
	}
	if input.CostCenter != nil {
		worker.CostCenter = trimmed(input.CostCenter)
	}
	if input.Tier != nil {
		tier, err := validTier(*input.Tier)
		if err != nil {
			return nil, err
		}
		worker.Tier = tier
	}

	if err := s.workers.Update(ctx, worker); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"id": id})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return worker, nil
}

// Delete removes the given workers, returning how many rows went away.
func (s *DirectoryService) Delete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("at least one id is required", nil)
	}
	removed, err := s.workers.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, apperrors.NewStorageUnavailable(err)
	}
	return removed, nil
}

func validTier(tier domain.Tier) (domain.Tier, error) {
	switch tier {
	case "":
		return domain.TierNormal, nil
	case domain.TierNormal, domain.TierPlus, domain.TierPremium:
		return tier, nil
	default:
		return "", apperrors.NewValidationError("unknown tier", map[string]any{"tier": string(tier)})
	}
}
