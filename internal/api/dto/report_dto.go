package dto

import "github.com/spec-kit/voucher-service/internal/service"

// ReportResponse carries the ordered rows plus both summary maps.
type ReportResponse struct {
	Filters           service.ReportQuery `json:"filters"`
	Summary           map[string]int      `json:"summary"`
	CostCenterSummary map[string]int      `json:"cc_summary"`
	Orders            []OrderResponse     `json:"orders"`
}

// NewReportResponse renders a report.
func NewReportResponse(report *service.Report) ReportResponse {
	orders := make([]OrderResponse, 0, len(report.Orders))
	for i := range report.Orders {
		orders = append(orders, NewReportRowResponse(&report.Orders[i]))
	}
	return ReportResponse{
		Filters:           report.Filters,
		Summary:           report.Summary,
		CostCenterSummary: report.CostCenterSummary,
		Orders:            orders,
	}
}
