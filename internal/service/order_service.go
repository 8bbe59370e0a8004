package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/voucher-service/internal/cache"
	"github.com/spec-kit/voucher-service/internal/domain"
	"github.com/spec-kit/voucher-service/internal/events"
	"github.com/spec-kit/voucher-service/internal/repository"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// SubmitOrderInput describes an order submission.
type SubmitOrderInput struct {
	IdentityKey string
	Mode        domain.FulfillmentMode
	MealSlot    domain.MealSlot
	Quantity    int
	PickupTime  *string
	PickupName  *string
	GuestNames  *string
	Detail      *string
	Signature   *string
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	WorkerRepo repository.WorkerRepository
	OrderRepo  repository.OrderRepository
	Dispatcher events.Dispatcher
	Cache      *cache.TicketCache
	Limits     domain.QuotaLimits
	Timezone   string

	// Test seams; production leaves them nil.
	Now         func() time.Time
	NewTicketID func() string
}

// OrderService orchestrates identity lookup, quota enforcement and atomic
// admission of new orders.
type OrderService struct {
	workers     repository.WorkerRepository
	orders      repository.OrderRepository
	dispatcher  events.Dispatcher
	cache       *cache.TicketCache
	limits      domain.QuotaLimits
	loc         *time.Location
	now         func() time.Time
	newTicketID func() string
}

// NewOrderService constructs the service. The timezone names the single
// reference zone for all calendar-day math.
func NewOrderService(deps OrderDependencies) (*OrderService, error) {
	loc, err := time.LoadLocation(deps.Timezone)
	if err != nil {
		return nil, err
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	newTicketID := deps.NewTicketID
	if newTicketID == nil {
		newTicketID = generateTicketID
	}
	return &OrderService{
		workers:     deps.WorkerRepo,
		orders:      deps.OrderRepo,
		dispatcher:  deps.Dispatcher,
		cache:       deps.Cache,
		limits:      deps.Limits,
		loc:         loc,
		now:         now,
		newTicketID: newTicketID,
	}, nil
}

// generateTicketID returns an 8-character uppercase token. Collisions are
// possible but negligible; insertion retries once on a duplicate.
func generateTicketID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Submit runs the full intake algorithm and returns either a ticket summary
// or a typed error. Nothing is persisted on rejection.
func (s *OrderService) Submit(ctx context.Context, input SubmitOrderInput) (*domain.Ticket, error) {
	key := domain.NormalizeIdentityKey(input.IdentityKey)
	if key == "" || input.Mode == "" {
		return nil, apperrors.NewValidationError("identity_key and type are required", nil)
	}
	if input.Mode != domain.FulfillmentDineIn && input.Mode != domain.FulfillmentTakeaway {
		return nil, apperrors.NewValidationError("unknown fulfillment type", map[string]any{"type": string(input.Mode)})
	}

	mealSlot := input.MealSlot
	if mealSlot == "" {
		mealSlot = domain.MealLunch
	}
	if mealSlot != domain.MealLunch && mealSlot != domain.MealDinner {
		return nil, apperrors.NewValidationError("unknown meal slot", map[string]any{"meal_slot": string(mealSlot)})
	}

	if input.PickupTime != nil {
		if !validPickupTime(*input.PickupTime) {
			return nil, apperrors.NewValidationError("pickup_time must be on the half-hour between 11:00 and 23:00", nil)
		}
	}

	worker, err := s.workers.FindByIdentity(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewWorkerNotFound()
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}

	tier := worker.EffectiveTier()
	now := s.now().In(s.loc)
	today := now.Format(dateLayout)

	// Fast, precise rejection before opening a transaction. The admission
	// transaction re-checks under the lock, so this read can be stale
	// without risking an overshoot.
	already, err := s.orders.SumQuantityFor(ctx, key, today)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	quantity, ok := s.limits.Admissible(tier, already, input.Quantity)
	if !ok {
		return nil, apperrors.NewQuotaExceeded(s.limits.MaxDaily(tier), already)
	}

	pickupName := worker.Name
	if input.PickupName != nil && strings.TrimSpace(*input.PickupName) != "" {
		pickupName = strings.ToUpper(strings.TrimSpace(*input.PickupName))
	}

	order := &domain.Order{
		WorkerKey:  key,
		WorkerName: worker.Name,
		Company:    worker.Company,
		Mode:       input.Mode,
		Quantity:   quantity,
		DateStr:    today,
		PickupTime: input.PickupTime,
		PickupName: &pickupName,
		MealSlot:   mealSlot,
		GuestNames: trimmed(input.GuestNames),
		Detail:     trimmed(input.Detail),
		Signature:  input.Signature,
	}

	maxDaily := s.limits.MaxDaily(tier)
	order.ID = s.newTicketID()
	err = s.orders.Admit(ctx, order, maxDaily)
	if errors.Is(err, repository.ErrDuplicateTicket) {
		// One regeneration, then give up.
		order.ID = s.newTicketID()
		err = s.orders.Admit(ctx, order, maxDaily)
		if errors.Is(err, repository.ErrDuplicateTicket) {
			return nil, apperrors.NewTicketCollision()
		}
	}
	if err != nil {
		var quota *repository.QuotaViolationError
		if errors.As(err, &quota) {
			return nil, apperrors.NewQuotaExceeded(quota.Max, quota.Already)
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventOrderAdmitted,
		OrderID:   order.ID,
		Timestamp: now,
		Payload: events.OrderAdmittedPayload{
			WorkerKey: key,
			Company:   worker.Company,
			Quantity:  quantity,
			DateStr:   today,
		},
	})

	return &domain.Ticket{
		ID:         order.ID,
		WorkerName: worker.Name,
		Company:    worker.Company,
		Mode:       input.Mode,
		Quantity:   quantity,
		Date:       today,
		Time:       now.Format("15:04"),
		Premium:    tier == domain.TierPremium,
	}, nil
}

// GetDetail serves the public ticket lookup through the read-through cache.
func (s *OrderService) GetDetail(ctx context.Context, id string) (*domain.OrderDetail, error) {
	if detail, hit := s.cache.Get(ctx, id); hit {
		return detail, nil
	}
	detail, err := s.orders.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}
	s.cache.Set(ctx, detail)
	return detail, nil
}

// SetPrinted toggles the only mutable order field.
func (s *OrderService) SetPrinted(ctx context.Context, id string, printed bool) error {
	if err := s.orders.UpdatePrinted(ctx, id, printed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return apperrors.NewStorageUnavailable(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventOrderPrinted,
		OrderID:   id,
		Timestamp: s.now(),
		Payload:   events.OrderPrintedPayload{Printed: printed},
	})
	return nil
}

// Delete removes an order permanently.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	removed, err := s.orders.Delete(ctx, id)
	if err != nil {
		return apperrors.NewStorageUnavailable(err)
	}
	if removed == 0 {
		return apperrors.NewNotFound("order", map[string]any{"id": id})
	}
	s.publish(ctx, events.Event{
		Type:      events.EventOrderDeleted,
		OrderID:   id,
		Timestamp: s.now(),
	})
	return nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// validPickupTime accepts HH:MM on the half-hour grid 11:00..23:00.
func validPickupTime(value string) bool {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 11*60 && minutes <= 23*60 && minutes%30 == 0
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
