package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voucher-service/internal/api/dto"
	"github.com/spec-kit/voucher-service/internal/service"
)

// ReportsHandler exposes the report aggregation endpoint.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Get GET /api/reports.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	query := service.ReportQuery{
		Mode:      service.ReportMode(c.Query("mode")),
		Date:      c.Query("date"),
		Month:     c.Query("month"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Company:   c.Query("company"),
		WorkerKey: c.Query("worker"),
	}

	report, err := h.reports.Build(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportResponse(report))
}
