package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voucher-service/internal/api/dto"
	"github.com/spec-kit/voucher-service/internal/service"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// OrdersHandler exposes order intake and management endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Submit POST /api/orders.
func (h *OrdersHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.IdentityKey == "" || req.Type == "" {
		return apperrors.NewValidationError("identity_key and type required", nil)
	}

	ticket, err := h.orders.Submit(c.UserContext(), service.SubmitOrderInput{
		IdentityKey: req.IdentityKey,
		Mode:        req.FulfillmentMode(),
		MealSlot:    req.MealSlotValue(),
		Quantity:    req.Quantity,
		PickupTime:  req.PickupTime,
		PickupName:  req.PickupName,
		GuestNames:  req.GuestNames,
		Detail:      req.Detail,
		Signature:   req.Signature,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "ticket": ticket})
}

// Get GET /api/orders/:id. Public: serves the printable ticket view.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("id required", nil)
	}
	detail, err := h.orders.GetDetail(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderDetailResponse(detail))
}

// UpdatePrinted PATCH /api/orders/:id (admin).
func (h *OrdersHandler) UpdatePrinted(c *fiber.Ctx) error {
	id := c.Params("id")
	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Printed == nil {
		return apperrors.NewValidationError("printed required", nil)
	}
	if err := h.orders.SetPrinted(c.UserContext(), id, *req.Printed); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete DELETE /api/orders/:id (admin).
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.orders.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
