package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/voucher-service/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateKey is returned on unique constraint violations.
var ErrDuplicateKey = errors.New("duplicate key")

const uniqueViolationCode = "23505"

// WorkerRepository is the directory contract consumed by the core.
type WorkerRepository interface {
	FindByIdentity(ctx context.Context, key string) (*domain.Worker, error)
	CostCenterOf(ctx context.Context, key string) (*string, error)
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
	List(ctx context.Context) ([]domain.Worker, error)
	Create(ctx context.Context, worker *domain.Worker) error
	Update(ctx context.Context, worker *domain.Worker) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteByCompany(ctx context.Context, company string) (int64, error)
}

type workerRepository struct {
	pool *pgxpool.Pool
}

// NewWorkerRepository instantiates the repository.
func NewWorkerRepository(pool *pgxpool.Pool) WorkerRepository {
	return &workerRepository{pool: pool}
}

const workerColumns = `id, identity_key, name, company, cost_center, tier, created_at`

func (r *workerRepository) FindByIdentity(ctx context.Context, key string) (*domain.Worker, error) {
	const query = `SELECT ` + workerColumns + ` FROM workers WHERE identity_key=$1`
	return r.fetchSingle(ctx, query, key)
}

func (r *workerRepository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	const query = `SELECT ` + workerColumns + ` FROM workers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *workerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Worker, error) {
	var worker domain.Worker
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&worker.ID,
		&worker.IdentityKey,
		&worker.Name,
		&worker.Company,
		&worker.CostCenter,
		&worker.Tier,
		&worker.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepository) CostCenterOf(ctx context.Context, key string) (*string, error) {
	const query = `SELECT cost_center FROM workers WHERE identity_key=$1`
	var cc *string
	if err := r.pool.QueryRow(ctx, query, key).Scan(&cc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cc, nil
}

func (r *workerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	const query = `SELECT ` + workerColumns + ` FROM workers ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Worker
	for rows.Next() {
		var worker domain.Worker
		if err := rows.Scan(
			&worker.ID,
			&worker.IdentityKey,
			&worker.Name,
			&worker.Company,
			&worker.CostCenter,
			&worker.Tier,
			&worker.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, worker)
	}
	return result, rows.Err()
}

func (r *workerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	const query = `
        INSERT INTO workers (identity_key, name, company, cost_center, tier)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		worker.IdentityKey,
		worker.Name,
		worker.Company,
		worker.CostCenter,
		worker.Tier,
	).Scan(&worker.ID, &worker.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *workerRepository) Update(ctx context.Context, worker *domain.Worker) error {
	const query = `
        UPDATE workers SET name=$1, company=$2, cost_center=$3, tier=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		worker.Name,
		worker.Company,
		worker.CostCenter,
		worker.Tier,
		worker.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *workerRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	const query = `DELETE FROM workers WHERE id = ANY($1)`
	cmd, err := r.pool.Exec(ctx, query, ids)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *workerRepository) DeleteByCompany(ctx context.Context, company string) (int64, error) {
	const query = `DELETE FROM workers WHERE company=$1`
	cmd, err := r.pool.Exec(ctx, query, company)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
