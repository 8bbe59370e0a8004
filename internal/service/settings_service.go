package service

import (
	"context"

	"github.com/spec-kit/voucher-service/internal/repository"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// Setting keys writable through the API.
const (
	SettingRestaurantName = "restaurant_name"
	SettingRestaurantLogo = "restaurant_logo"
)

// SettingsService exposes the key/value settings store.
type SettingsService struct {
	settings repository.SettingsRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// All returns every setting as a flat map.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	values, err := s.settings.All(ctx)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return values, nil
}

// Update upserts the provided values; unknown keys are ignored.
func (s *SettingsService) Update(ctx context.Context, values map[string]string) error {
	for _, key := range []string{SettingRestaurantName, SettingRestaurantLogo} {
		value, ok := values[key]
		if !ok || value == "" {
			continue
		}
		if err := s.settings.Upsert(ctx, key, value); err != nil {
			return apperrors.NewStorageUnavailable(err)
		}
	}
	return nil
}
