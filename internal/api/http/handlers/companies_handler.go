package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voucher-service/internal/api/dto"
	"github.com/spec-kit/voucher-service/internal/service"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// CompaniesHandler exposes employer registry endpoints.
type CompaniesHandler struct {
	companies *service.CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companies *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

// List GET /api/companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(items)
}

// Create POST /api/companies (admin).
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	company, err := h.companies.Create(c.UserContext(), companyInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCompanyResponse(company))
}

// Update PUT /api/companies (admin).
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ID == 0 {
		return apperrors.NewValidationError("id required", nil)
	}

	if err := h.companies.Update(c.UserContext(), req.ID, companyInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete DELETE /api/companies/:id (admin). Cascades to the company's
// workers.
func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("id must be numeric", nil)
	}

	removedWorkers, err := h.companies.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "removed_workers": removedWorkers})
}

func companyInput(req dto.CompanyRequest) service.CompanyInput {
	return service.CompanyInput{
		Name:         req.Name,
		TaxID:        req.TaxID,
		Address:      req.Address,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		LogoPath:     req.LogoPath,
	}
}
