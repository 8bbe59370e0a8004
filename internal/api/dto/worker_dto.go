package dto

import (
	"time"

	"github.com/spec-kit/voucher-service/internal/domain"
)

// CreateWorkerRequest payload.
type CreateWorkerRequest struct {
	IdentityKey string  `json:"identity_key"`
	Name        string  `json:"name"`
	Company     string  `json:"company"`
	CostCenter  *string `json:"cost_center"`
	Tier        string  `json:"tier"`
}

// UpdateWorkerRequest payload; absent fields keep their stored values.
type UpdateWorkerRequest struct {
	ID         int64   `json:"id"`
	Name       *string `json:"name"`
	Company    *string `json:"company"`
	CostCenter *string `json:"cost_center"`
	Tier       *string `json:"tier"`
}

// WorkerResponse rendering.
type WorkerResponse struct {
	ID          int64     `json:"id"`
	IdentityKey string    `json:"identity_key"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	CostCenter  *string   `json:"cost_center"`
	Tier        string    `json:"tier"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewWorkerResponse renders a worker.
func NewWorkerResponse(worker *domain.Worker) WorkerResponse {
	return WorkerResponse{
		ID:          worker.ID,
		IdentityKey: worker.IdentityKey,
		Name:        worker.Name,
		Company:     worker.Company,
		CostCenter:  worker.CostCenter,
		Tier:        string(worker.EffectiveTier()),
		CreatedAt:   worker.CreatedAt,
	}
}

// CompanyRequest payload for create and update.
type CompanyRequest struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	TaxID        string  `json:"tax_id"`
	Address      string  `json:"address"`
	ContactName  string  `json:"contact_name"`
	ContactEmail string  `json:"contact_email"`
	ContactPhone string  `json:"contact_phone"`
	LogoPath     *string `json:"logo_path"`
}

// CompanyResponse rendering.
type CompanyResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TaxID        string    `json:"tax_id"`
	Address      string    `json:"address"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	LogoPath     *string   `json:"logo_path"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCompanyResponse renders a company.
func NewCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:           company.ID,
		Name:         company.Name,
		TaxID:        company.TaxID,
		Address:      company.Address,
		ContactName:  company.ContactName,
		ContactEmail: company.ContactEmail,
		ContactPhone: company.ContactPhone,
		LogoPath:     company.LogoPath,
		CreatedAt:    company.CreatedAt,
	}
}

// LoginRequest payload.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// SettingsRequest payload.
type SettingsRequest struct {
	RestaurantName string `json:"restaurant_name"`
	RestaurantLogo string `json:"restaurant_logo"`
}
