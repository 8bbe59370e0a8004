package domain

import "time"

// FulfillmentMode distinguishes how a voucher is redeemed.
type FulfillmentMode string

const (
	FulfillmentDineIn   FulfillmentMode = "DINE_IN"
	FulfillmentTakeaway FulfillmentMode = "TAKEAWAY"
)

// MealSlot is the meal the voucher covers.
type MealSlot string

const (
	MealLunch  MealSlot = "LUNCH"
	MealDinner MealSlot = "DINNER"
)

// Order is one issued meal voucher. Worker name and company are captured at
// creation time so later directory edits do not rewrite historical tickets.
// Orders are immutable except for the Printed flag.
type Order struct {
	ID         string
	WorkerKey  string
	WorkerName string
	Company    string
	Mode       FulfillmentMode
	Quantity   int
	DateStr    string
	PickupTime *string
	PickupName *string
	MealSlot   MealSlot
	GuestNames *string
	Detail     *string
	Signature  *string
	Printed    bool
	CreatedAt  time.Time
}

// ReportRow is an order enriched with the owning worker's current cost
// center, resolved at read time.
type ReportRow struct {
	Order
	CostCenter *string
}

// OrderDetail is an order joined with the employer's logo reference, served
// on the public ticket page.
type OrderDetail struct {
	Order
	CompanyLogo *string
}

// Ticket is the summary handed back to the caller on admission.
type Ticket struct {
	ID         string          `json:"id"`
	WorkerName string          `json:"worker_name"`
	Company    string          `json:"company"`
	Mode       FulfillmentMode `json:"type"`
	Quantity   int             `json:"quantity"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Premium    bool            `json:"is_premium"`
}
