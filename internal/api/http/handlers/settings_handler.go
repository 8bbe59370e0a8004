package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voucher-service/internal/api/dto"
	"github.com/spec-kit/voucher-service/internal/service"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// SettingsHandler exposes the key/value settings store.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get GET /api/settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	values, err := h.settings.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(values)
}

// Update POST /api/settings (admin).
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	err := h.settings.Update(c.UserContext(), map[string]string{
		service.SettingRestaurantName: req.RestaurantName,
		service.SettingRestaurantLogo: req.RestaurantLogo,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
