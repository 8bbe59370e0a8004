package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/voucher-service/internal/domain"
)

// ErrDuplicateTicket is returned when a generated ticket id already exists.
var ErrDuplicateTicket = errors.New("duplicate ticket id")

// QuotaViolationError reports a rejected admission with the data needed for
// a precise caller-facing message.
type QuotaViolationError struct {
	Max     int
	Already int
}

func (e *QuotaViolationError) Error() string {
	return fmt.Sprintf("daily quota exceeded: max %d, already ordered %d", e.Max, e.Already)
}

// ReportFilter selects the candidate order set for a report. All fields are
// optional; nil means "no constraint". OrderByDateFirst switches range-mode
// ordering (date_str DESC, created_at DESC) on.
type ReportFilter struct {
	Date             *string
	MonthPrefix      *string
	FromDate         *string
	ToDate           *string
	Company          *string
	WorkerKey        *string
	OrderByDateFirst bool
}

// OrderRepository is the ledger contract consumed by the core.
type OrderRepository interface {
	// Admit appends the order if and only if the post-insert daily total for
	// (order.WorkerKey, order.DateStr) stays within maxDaily. The read and
	// the insert execute as one serializable unit; concurrent submissions
	// for the same worker and date cannot jointly overshoot the quota.
	Admit(ctx context.Context, order *domain.Order, maxDaily int) error
	SumQuantityFor(ctx context.Context, workerKey, dateStr string) (int, error)
	GetDetail(ctx context.Context, id string) (*domain.OrderDetail, error)
	ListForReport(ctx context.Context, filter ReportFilter) ([]domain.ReportRow, error)
	UpdatePrinted(ctx context.Context, id string, printed bool) error
	Delete(ctx context.Context, id string) (int64, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Admit(ctx context.Context, order *domain.Order, maxDaily int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Serialize same-worker-same-day admissions. hashtextextended gives a
	// stable 64-bit key; unrelated submissions stay fully concurrent.
	const lock = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	if _, err := tx.Exec(ctx, lock, order.WorkerKey+"|"+order.DateStr); err != nil {
		return err
	}

	var already int
	const sum = `SELECT COALESCE(SUM(quantity),0) FROM orders WHERE worker_key=$1 AND date_str=$2`
	if err := tx.QueryRow(ctx, sum, order.WorkerKey, order.DateStr).Scan(&already); err != nil {
		return err
	}
	if already+order.Quantity > maxDaily {
		return &QuotaViolationError{Max: maxDaily, Already: already}
	}

	const insert = `
        INSERT INTO orders (id, worker_key, worker_name, company, mode, quantity, date_str,
            pickup_time, pickup_name, meal_slot, guest_names, detail, signature)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING created_at`
	err = tx.QueryRow(ctx, insert,
		order.ID,
		order.WorkerKey,
		order.WorkerName,
		order.Company,
		order.Mode,
		order.Quantity,
		order.DateStr,
		order.PickupTime,
		order.PickupName,
		order.MealSlot,
		order.GuestNames,
		order.Detail,
		order.Signature,
	).Scan(&order.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTicket
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) SumQuantityFor(ctx context.Context, workerKey, dateStr string) (int, error) {
	const query = `SELECT COALESCE(SUM(quantity),0) FROM orders WHERE worker_key=$1 AND date_str=$2`
	var total int
	if err := r.pool.QueryRow(ctx, query, workerKey, dateStr).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *orderRepository) GetDetail(ctx context.Context, id string) (*domain.OrderDetail, error) {
	const query = `
        SELECT o.id, o.worker_key, o.worker_name, o.company, o.mode, o.quantity, o.date_str,
               o.pickup_time, o.pickup_name, o.meal_slot, o.guest_names, o.detail, o.signature,
               o.printed, o.created_at, c.logo_path
        FROM orders o
        LEFT JOIN companies c ON o.company = c.name
        WHERE o.id=$1`
	var detail domain.OrderDetail
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.WorkerKey,
		&detail.WorkerName,
		&detail.Company,
		&detail.Mode,
		&detail.Quantity,
		&detail.DateStr,
		&detail.PickupTime,
		&detail.PickupName,
		&detail.MealSlot,
		&detail.GuestNames,
		&detail.Detail,
		&detail.Signature,
		&detail.Printed,
		&detail.CreatedAt,
		&detail.CompanyLogo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (r *orderRepository) ListForReport(ctx context.Context, filter ReportFilter) ([]domain.ReportRow, error) {
	base := `SELECT o.id, o.worker_key, o.worker_name, o.company, o.mode, o.quantity, o.date_str,
                    o.pickup_time, o.pickup_name, o.meal_slot, o.guest_names, o.detail, o.signature,
                    o.printed, o.created_at, w.cost_center
             FROM orders o
             LEFT JOIN workers w ON o.worker_key = w.identity_key`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Date != nil {
		args = append(args, *filter.Date)
		clauses = append(clauses, fmt.Sprintf("o.date_str=$%d", len(args)))
	}
	if filter.MonthPrefix != nil {
		args = append(args, *filter.MonthPrefix+"%")
		clauses = append(clauses, fmt.Sprintf("o.date_str LIKE $%d", len(args)))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		clauses = append(clauses, fmt.Sprintf("o.date_str >= $%d", len(args)))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		clauses = append(clauses, fmt.Sprintf("o.date_str <= $%d", len(args)))
	}
	if filter.Company != nil {
		args = append(args, *filter.Company)
		clauses = append(clauses, fmt.Sprintf("o.company=$%d", len(args)))
	}
	if filter.WorkerKey != nil {
		args = append(args, *filter.WorkerKey)
		clauses = append(clauses, fmt.Sprintf("o.worker_key=$%d", len(args)))
	}

	order := "o.created_at DESC"
	if filter.OrderByDateFirst {
		order = "o.date_str DESC, o.created_at DESC"
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s", base, strings.Join(clauses, " AND "), order)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReportRow
	for rows.Next() {
		var row domain.ReportRow
		if err := rows.Scan(
			&row.ID,
			&row.WorkerKey,
			&row.WorkerName,
			&row.Company,
			&row.Mode,
			&row.Quantity,
			&row.DateStr,
			&row.PickupTime,
			&row.PickupName,
			&row.MealSlot,
			&row.GuestNames,
			&row.Detail,
			&row.Signature,
			&row.Printed,
			&row.CreatedAt,
			&row.CostCenter,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *orderRepository) UpdatePrinted(ctx context.Context, id string, printed bool) error {
	const query = `UPDATE orders SET printed=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, printed, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM orders WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
