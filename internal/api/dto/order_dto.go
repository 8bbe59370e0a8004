package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/voucher-service/internal/domain"
)

// SubmitOrderRequest payload.
type SubmitOrderRequest struct {
	IdentityKey string  `json:"identity_key"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	PickupTime  *string `json:"pickup_time"`
	PickupName  *string `json:"pickup_name"`
	MealSlot    string  `json:"meal_slot"`
	GuestNames  *string `json:"guest_names"`
	Detail      *string `json:"detail"`
	Signature   *string `json:"signature"`
}

// FulfillmentMode maps the wire token onto the domain enum. Unknown tokens
// map to an empty mode, which the service rejects.
func (r SubmitOrderRequest) FulfillmentMode() domain.FulfillmentMode {
	switch strings.ToLower(strings.TrimSpace(r.Type)) {
	case "dine-in", "dine_in":
		return domain.FulfillmentDineIn
	case "takeaway", "take-away":
		return domain.FulfillmentTakeaway
	default:
		return domain.FulfillmentMode(strings.ToUpper(strings.TrimSpace(r.Type)))
	}
}

// MealSlotValue maps the wire meal slot onto the domain enum, empty when
// unspecified so the service can default it.
func (r SubmitOrderRequest) MealSlotValue() domain.MealSlot {
	return domain.MealSlot(strings.ToUpper(strings.TrimSpace(r.MealSlot)))
}

// UpdateOrderRequest payload for the printed-flag patch.
type UpdateOrderRequest struct {
	Printed *bool `json:"printed"`
}

// OrderResponse is an order rendered for API callers.
type OrderResponse struct {
	ID          string    `json:"id"`
	WorkerKey   string    `json:"worker_key"`
	WorkerName  string    `json:"worker_name"`
	Company     string    `json:"company"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Date        string    `json:"date"`
	PickupTime  *string   `json:"pickup_time"`
	PickupName  *string   `json:"pickup_name"`
	MealSlot    string    `json:"meal_slot"`
	GuestNames  *string   `json:"guest_names"`
	Detail      *string   `json:"detail"`
	Printed     bool      `json:"printed"`
	CostCenter  *string   `json:"cost_center,omitempty"`
	CompanyLogo *string   `json:"company_logo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewOrderResponse renders an order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		WorkerKey:  order.WorkerKey,
		WorkerName: order.WorkerName,
		Company:    order.Company,
		Type:       string(order.Mode),
		Quantity:   order.Quantity,
		Date:       order.DateStr,
		PickupTime: order.PickupTime,
		PickupName: order.PickupName,
		MealSlot:   string(order.MealSlot),
		GuestNames: order.GuestNames,
		Detail:     order.Detail,
		Printed:    order.Printed,
		CreatedAt:  order.CreatedAt,
	}
}

// NewOrderDetailResponse renders the public ticket view.
func NewOrderDetailResponse(detail *domain.OrderDetail) OrderResponse {
	resp := NewOrderResponse(&detail.Order)
	resp.CompanyLogo = detail.CompanyLogo
	return resp
}

// NewReportRowResponse renders a report row with its cost center.
func NewReportRowResponse(row *domain.ReportRow) OrderResponse {
	resp := NewOrderResponse(&row.Order)
	resp.CostCenter = row.CostCenter
	return resp
}
