package domain

import "time"

// Company is an employer on record. Workers reference it by name, not by
// foreign key, matching how orders denormalize the employer.
type Company struct {
	ID           int64
	Name         string
	TaxID        string
	Address      string
	ContactName  string
	ContactEmail string
	ContactPhone string
	LogoPath     *string
	CreatedAt    time.Time
}

// Setting is one key/value configuration row.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
