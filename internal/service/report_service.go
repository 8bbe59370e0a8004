package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/voucher-service/internal/domain"
	"github.com/spec-kit/voucher-service/internal/repository"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// ReportMode selects how the candidate order set is built.
type ReportMode string

const (
	ModeSingleDate ReportMode = "date"
	ModeMonth      ReportMode = "month"
	ModeWeek       ReportMode = "week"
	ModeRange      ReportMode = "range"
	ModeAll        ReportMode = "all"
)

// CompanyFilterAll disables the employer filter.
const CompanyFilterAll = "ALL"

// costCenterFallback buckets orders whose worker has no cost center.
const costCenterFallback = "UNASSIGNED"

// ReportQuery carries the mode and its parameters. Empty mode falls back to
// single-date, and an empty date means today.
type ReportQuery struct {
	Mode      ReportMode
	Date      string
	Month     string
	StartDate string
	EndDate   string
	Company   string
	WorkerKey string
}

// Report is the aggregation output: the raw ordered rows plus both summary
// maps. Summary carries a distinguished TOTAL key.
type Report struct {
	Filters           ReportQuery        `json:"filters"`
	Summary           map[string]int     `json:"summary"`
	CostCenterSummary map[string]int     `json:"cc_summary"`
	Orders            []domain.ReportRow `json:"orders"`
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	OrderRepo repository.OrderRepository
	Timezone  string

	Now func() time.Time
}

// ReportService reconstructs time-windowed, grouped consumption summaries
// from the order ledger.
type ReportService struct {
	orders repository.OrderRepository
	loc    *time.Location
	now    func() time.Time
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) (*ReportService, error) {
	loc, err := time.LoadLocation(deps.Timezone)
	if err != nil {
		return nil, err
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ReportService{orders: deps.OrderRepo, loc: loc, now: now}, nil
}

// Build resolves the query mode into an order set and folds it once into
// per-company and per-cost-center totals. An unreachable ledger fails the
// whole call; malformed range bounds degrade to an empty result.
func (s *ReportService) Build(ctx context.Context, query ReportQuery) (*Report, error) {
	filter, empty := s.resolveFilter(query)

	report := &Report{
		Filters:           query,
		Summary:           map[string]int{"TOTAL": 0},
		CostCenterSummary: map[string]int{},
		Orders:            []domain.ReportRow{},
	}
	if empty {
		return report, nil
	}

	rows, err := s.orders.ListForReport(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}

	for _, row := range rows {
		qty := row.Quantity
		if qty <= 0 {
			qty = 1
		}
		report.Summary[row.Company] += qty
		report.Summary["TOTAL"] += qty

		cc := costCenterFallback
		if row.CostCenter != nil && strings.TrimSpace(*row.CostCenter) != "" {
			cc = strings.ToUpper(strings.TrimSpace(*row.CostCenter))
		}
		report.CostCenterSummary[cc] += qty
	}
	report.Orders = rows
	if report.Orders == nil {
		report.Orders = []domain.ReportRow{}
	}
	return report, nil
}

// resolveFilter maps the query onto a ledger filter. The second return value
// forces an empty result without touching the store.
func (s *ReportService) resolveFilter(query ReportQuery) (repository.ReportFilter, bool) {
	var filter repository.ReportFilter

	if company := strings.TrimSpace(query.Company); company != "" && company != CompanyFilterAll {
		filter.Company = &company
	}

	switch query.Mode {
	case ModeAll:
		if key := domain.NormalizeIdentityKey(query.WorkerKey); key != "" {
			filter.WorkerKey = &key
		}
	case ModeWeek:
		cutoff := s.now().In(s.loc).AddDate(0, 0, -7).Format(dateLayout)
		filter.FromDate = &cutoff
	case ModeRange:
		start, okStart := validDate(query.StartDate)
		end, okEnd := validDate(query.EndDate)
		if !okStart || !okEnd {
			return filter, true
		}
		filter.FromDate = &start
		filter.ToDate = &end
		filter.OrderByDateFirst = true
	case ModeMonth:
		if month, ok := validMonth(query.Month); ok {
			filter.MonthPrefix = &month
		} else {
			return filter, true
		}
	default:
		date := strings.TrimSpace(query.Date)
		if date == "" {
			date = s.now().In(s.loc).Format(dateLayout)
		}
		filter.Date = &date
	}

	return filter, false
}

func validDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse(dateLayout, value); err != nil {
		return "", false
	}
	return value, true
}

func validMonth(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("2006-01", value); err != nil {
		return "", false
	}
	return value, true
}
