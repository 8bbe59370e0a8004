package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/voucher-service/internal/domain"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

const testZone = "America/Santiago"

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	loc, err := time.LoadLocation(testZone)
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		t.Fatalf("parse clock value: %v", err)
	}
	return func() time.Time { return parsed }
}

func testWorker(key, name, company string, tier domain.Tier) *domain.Worker {
	return &domain.Worker{ID: 1, IdentityKey: key, Name: name, Company: company, Tier: tier}
}

func newTestOrderService(t *testing.T, deps OrderDependencies) *OrderService {
	t.Helper()
	if deps.Timezone == "" {
		deps.Timezone = testZone
	}
	if deps.Limits == (domain.QuotaLimits{}) {
		deps.Limits = domain.DefaultQuotaLimits()
	}
	svc, err := NewOrderService(deps)
	if err != nil {
		t.Fatalf("NewOrderService: %v", err)
	}
	return svc
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	return apperrors.CodeOf(err)
}

func TestSubmitUnknownWorker(t *testing.T) {
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(),
		OrderRepo:  newFakeOrderRepo(nil),
	})

	_, err := svc.Submit(context.Background(), SubmitOrderInput{
		IdentityKey: "12.345.678-9",
		Mode:        domain.FulfillmentDineIn,
	})
	if got := codeOf(t, err); got != "WORKER_NOT_FOUND" {
		t.Fatalf("code = %s, want WORKER_NOT_FOUND", got)
	}
}

func TestSubmitNormalizesIdentityBeforeLookup(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("12345678-9", "ANA SOTO", "ACME", domain.TierNormal)),
		OrderRepo:  newFakeOrderRepo(clock),
		Now:        clock,
	})

	ticket, err := svc.Submit(context.Background(), SubmitOrderInput{
		IdentityKey: " 12.345.678-9 ",
		Mode:        domain.FulfillmentDineIn,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ticket.WorkerName != "ANA SOTO" || ticket.Company != "ACME" {
		t.Fatalf("ticket = %+v", ticket)
	}
	if ticket.Date != "2024-03-01" {
		t.Fatalf("date = %s, want 2024-03-01", ticket.Date)
	}
	if len(ticket.ID) != 8 {
		t.Fatalf("ticket id %q, want 8 characters", ticket.ID)
	}
}

func TestSubmitNormalSecondOrderRejected(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("12345678-9", "ANA SOTO", "ACME", domain.TierNormal)),
		OrderRepo:  newFakeOrderRepo(clock),
		Now:        clock,
	})
	ctx := context.Background()
	input := SubmitOrderInput{IdentityKey: "12345678-9", Mode: domain.FulfillmentDineIn}

	if _, err := svc.Submit(ctx, input); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	input.Quantity = 5
	_, err := svc.Submit(ctx, input)
	de := apperrors.ToDomainError(err)
	if de == nil || de.Code != "QUOTA_EXCEEDED" {
		t.Fatalf("second submit error = %v, want QUOTA_EXCEEDED", err)
	}
	if de.Details["max"] != 1 || de.Details["already_ordered"] != 1 {
		t.Fatalf("details = %v, want max:1 already_ordered:1", de.Details)
	}
}

func TestSubmitPlusAccumulation(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("22222222-2", "J PEREZ", "ACME", domain.TierPlus)),
		OrderRepo:  newFakeOrderRepo(clock),
		Now:        clock,
	})
	ctx := context.Background()
	base := SubmitOrderInput{IdentityKey: "22222222-2", Mode: domain.FulfillmentTakeaway}

	// First call consumes one of the two daily units.
	first := base
	first.Quantity = 1
	if _, err := svc.Submit(ctx, first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Quantity 2 would push the total to three.
	overshoot := base
	overshoot.Quantity = 2
	guests := "J. Perez"
	overshoot.GuestNames = &guests
	if got := codeOf(t, mustErr(svc.Submit(ctx, overshoot))); got != "QUOTA_EXCEEDED" {
		t.Fatalf("overshoot code = %s, want QUOTA_EXCEEDED", got)
	}

	// Quantity 1 exactly fills the quota.
	second := base
	second.Quantity = 1
	ticket, err := svc.Submit(ctx, second)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if ticket.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", ticket.Quantity)
	}

	// Quota exhausted for the rest of the day.
	if got := codeOf(t, mustErr(svc.Submit(ctx, second))); got != "QUOTA_EXCEEDED" {
		t.Fatalf("third submit code = %s, want QUOTA_EXCEEDED", got)
	}
}

func TestSubmitPremiumClampsOutOfRangeQuantity(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("33333333-3", "M ROJAS", "GLOBEX", domain.TierPremium)),
		OrderRepo:  newFakeOrderRepo(clock),
		Now:        clock,
	})

	ticket, err := svc.Submit(context.Background(), SubmitOrderInput{
		IdentityKey: "33333333-3",
		Mode:        domain.FulfillmentDineIn,
		Quantity:    51,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ticket.Quantity != 1 {
		t.Fatalf("quantity = %d, want clamp to 1", ticket.Quantity)
	}
	if !ticket.Premium {
		t.Fatal("expected premium flag")
	}
}

func TestSubmitDefaults(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	ledger := newFakeOrderRepo(clock)
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("12345678-9", "ANA SOTO", "ACME", domain.TierNormal)),
		OrderRepo:  ledger,
		Now:        clock,
	})

	ticket, err := svc.Submit(context.Background(), SubmitOrderInput{
		IdentityKey: "12345678-9",
		Mode:        domain.FulfillmentDineIn,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	stored, err := ledger.GetDetail(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if stored.MealSlot != domain.MealLunch {
		t.Fatalf("meal slot = %s, want LUNCH", stored.MealSlot)
	}
	if stored.PickupName == nil || *stored.PickupName != "ANA SOTO" {
		t.Fatalf("pickup name = %v, want worker name", stored.PickupName)
	}
}

func TestSubmitPickupNameOverrideUppercased(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	ledger := newFakeOrderRepo(clock)
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("12345678-9", "ANA SOTO", "ACME", domain.TierNormal)),
		OrderRepo:  ledger,
		Now:        clock,
	})

	pickup := "  rosa diaz "
	ticket, err := svc.Submit(context.Background(), SubmitOrderInput{
		IdentityKey: "12345678-9",
		Mode:        domain.FulfillmentDineIn,
		PickupName:  &pickup,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	stored, _ := ledger.GetDetail(context.Background(), ticket.ID)
	if stored.PickupName == nil || *stored.PickupName != "ROSA DIAZ" {
		t.Fatalf("pickup name = %v, want ROSA DIAZ", stored.PickupName)
	}
}

func TestSubmitPickupTimeGrid(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("44444444-4", "P LEON", "ACME", domain.TierPremium)),
		OrderRepo:  newFakeOrderRepo(clock),
		Now:        clock,
	})
	ctx := context.Background()

	for _, bad := range []string{"10:30", "23:30", "12:15", "noon"} {
		value := bad
		_, err := svc.Submit(ctx, SubmitOrderInput{
			IdentityKey: "44444444-4",
			Mode:        domain.FulfillmentDineIn,
			PickupTime:  &value,
		})
		if got := codeOf(t, err); got != "VALIDATION_FAILED" {
			t.Fatalf("pickup %q code = %s, want VALIDATION_FAILED", bad, got)
		}
	}

	good := "11:30"
	if _, err := svc.Submit(ctx, SubmitOrderInput{
		IdentityKey: "44444444-4",
		Mode:        domain.FulfillmentDineIn,
		PickupTime:  &good,
	}); err != nil {
		t.Fatalf("valid pickup time rejected: %v", err)
	}
}

func TestSubmitTicketCollisionRetriesOnce(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	ledger := newFakeOrderRepo(clock)
	ids := []string{"AAAA1111", "AAAA1111", "BBBB2222"}
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("55555555-5", "L MUNOZ", "ACME", domain.TierPremium)),
		OrderRepo:  ledger,
		Now:        clock,
		NewTicketID: func() string {
			id := ids[0]
			if len(ids) > 1 {
				ids = ids[1:]
			}
			return id
		},
	})
	ctx := context.Background()

	// Seed an order owning the colliding id.
	seeded := &domain.Order{ID: "AAAA1111", WorkerKey: "99999999-9", DateStr: "2024-03-01", Quantity: 1}
	if err := ledger.Admit(ctx, seeded, 999); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ticket, err := svc.Submit(ctx, SubmitOrderInput{
		IdentityKey: "55555555-5",
		Mode:        domain.FulfillmentDineIn,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ticket.ID != "BBBB2222" {
		t.Fatalf("ticket id = %s, want regenerated BBBB2222", ticket.ID)
	}
}

func TestSubmitTicketCollisionTwiceIsFatal(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	ledger := newFakeOrderRepo(clock)
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo:  newFakeWorkerRepo(testWorker("55555555-5", "L MUNOZ", "ACME", domain.TierPremium)),
		OrderRepo:   ledger,
		Now:         clock,
		NewTicketID: func() string { return "AAAA1111" },
	})
	ctx := context.Background()

	seeded := &domain.Order{ID: "AAAA1111", WorkerKey: "99999999-9", DateStr: "2024-03-01", Quantity: 1}
	if err := ledger.Admit(ctx, seeded, 999); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Submit(ctx, SubmitOrderInput{
		IdentityKey: "55555555-5",
		Mode:        domain.FulfillmentDineIn,
	})
	if got := codeOf(t, err); got != "TICKET_COLLISION" {
		t.Fatalf("code = %s, want TICKET_COLLISION", got)
	}
}

func TestSubmitConcurrentNormalWorkerAdmitsExactlyOne(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("12345678-9", "ANA SOTO", "ACME", domain.TierNormal)),
		OrderRepo:  newFakeOrderRepo(clock),
		Now:        clock,
	})
	ctx := context.Background()
	input := SubmitOrderInput{IdentityKey: "12345678-9", Mode: domain.FulfillmentDineIn}

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Submit(ctx, input)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range results {
		if err == nil {
			accepted++
			continue
		}
		if apperrors.ToDomainError(err).Code != "QUOTA_EXCEEDED" {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != 1 {
		t.Fatalf("accepted = %d, want exactly 1", accepted)
	}
}

func TestSetPrintedAndDelete(t *testing.T) {
	clock := fixedClock(t, "2024-03-01 12:00")
	ledger := newFakeOrderRepo(clock)
	svc := newTestOrderService(t, OrderDependencies{
		WorkerRepo: newFakeWorkerRepo(testWorker("12345678-9", "ANA SOTO", "ACME", domain.TierNormal)),
		OrderRepo:  ledger,
		Now:        clock,
	})
	ctx := context.Background()

	ticket, err := svc.Submit(ctx, SubmitOrderInput{IdentityKey: "12345678-9", Mode: domain.FulfillmentDineIn})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := svc.SetPrinted(ctx, ticket.ID, true); err != nil {
		t.Fatalf("SetPrinted: %v", err)
	}
	stored, _ := ledger.GetDetail(ctx, ticket.ID)
	if !stored.Printed {
		t.Fatal("printed flag not persisted")
	}

	if err := svc.Delete(ctx, ticket.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, ticket.ID); apperrors.ToDomainError(err).Code != "NOT_FOUND" {
		t.Fatalf("second delete = %v, want NOT_FOUND", err)
	}
	if err := svc.SetPrinted(ctx, "MISSING1", true); apperrors.ToDomainError(err).Code != "NOT_FOUND" {
		t.Fatalf("patch missing = %v, want NOT_FOUND", err)
	}
}

func mustErr(_ *domain.Ticket, err error) error {
	if err == nil {
		return errors.New("expected error, got ticket")
	}
	return err
}
