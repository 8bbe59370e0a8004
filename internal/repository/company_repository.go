package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/voucher-service/internal/domain"
)

// CompanyRepository manages the employer registry.
type CompanyRepository interface {
	List(ctx context.Context) ([]domain.Company, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id int64) error
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository instantiates the repository.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

const companyColumns = `id, name, tax_id, address, contact_name, contact_email, contact_phone, logo_path, created_at`

func (r *companyRepository) List(ctx context.Context) ([]domain.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := scanCompany(rows, &company); err != nil {
			return nil, err
		}
		result = append(result, company)
	}
	return result, rows.Err()
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE id=$1`
	var company domain.Company
	if err := scanCompany(r.pool.QueryRow(ctx, query, id), &company); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (name, tax_id, address, contact_name, contact_email, contact_phone, logo_path)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		company.Name,
		company.TaxID,
		company.Address,
		company.ContactName,
		company.ContactEmail,
		company.ContactPhone,
		company.LogoPath,
	).Scan(&company.ID, &company.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	const query = `
        UPDATE companies SET name=$1, tax_id=$2, address=$3, contact_name=$4,
            contact_email=$5, contact_phone=$6, logo_path=COALESCE($7, logo_path)
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		company.Name,
		company.TaxID,
		company.Address,
		company.ContactName,
		company.ContactEmail,
		company.ContactPhone,
		company.LogoPath,
		company.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCompany(row pgx.Row, company *domain.Company) error {
	return row.Scan(
		&company.ID,
		&company.Name,
		&company.TaxID,
		&company.Address,
		&company.ContactName,
		&company.ContactEmail,
		&company.ContactPhone,
		&company.LogoPath,
		&company.CreatedAt,
	)
}
