package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voucher-service/internal/api/dto"
	"github.com/spec-kit/voucher-service/internal/domain"
	"github.com/spec-kit/voucher-service/internal/service"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// WorkersHandler exposes directory management endpoints.
type WorkersHandler struct {
	directory *service.DirectoryService
}

// NewWorkersHandler constructs handler.
func NewWorkersHandler(directory *service.DirectoryService) *WorkersHandler {
	return &WorkersHandler{directory: directory}
}

// List GET /api/workers.
func (h *WorkersHandler) List(c *fiber.Ctx) error {
	workers, err := h.directory.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		items = append(items, dto.NewWorkerResponse(&workers[i]))
	}
	return c.JSON(items)
}

// Create POST /api/workers (admin).
func (h *WorkersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	worker, err := h.directory.Create(c.UserContext(), service.WorkerCreateInput{
		IdentityKey: req.IdentityKey,
		Name:        req.Name,
		Company:     req.Company,
		CostCenter:  req.CostCenter,
		Tier:        domain.Tier(strings.ToUpper(strings.TrimSpace(req.Tier))),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewWorkerResponse(worker))
}

// Update PUT /api/workers (admin). Absent fields keep stored values.
func (h *WorkersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ID == 0 {
		return apperrors.NewValidationError("id required", nil)
	}

	var tier *domain.Tier
	if req.Tier != nil {
		t := domain.Tier(strings.ToUpper(strings.TrimSpace(*req.Tier)))
		tier = &t
	}
	worker, err := h.directory.Update(c.UserContext(), req.ID, service.WorkerUpdateInput{
		Name:       req.Name,
		Company:    req.Company,
		CostCenter: req.CostCenter,
		Tier:       tier,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkerResponse(worker))
}

// Delete DELETE /api/workers?id=1,2,3 (admin).
func (h *WorkersHandler) Delete(c *fiber.Ctx) error {
	raw := c.Query("id")
	if raw == "" {
		return apperrors.NewValidationError("id required", nil)
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("ids must be numeric", map[string]any{"id": part})
		}
		ids = append(ids, id)
	}

	removed, err := h.directory.Delete(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": removed})
}
