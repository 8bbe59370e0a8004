package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/voucher-service/internal/cache"
	"github.com/spec-kit/voucher-service/internal/events"
)

// RegisterSubscribers wires the audit log and cache invalidation handlers
// onto the dispatcher.
func RegisterSubscribers(dispatcher events.Dispatcher, ticketCache *cache.TicketCache, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	audit := func(ctx context.Context, event events.Event) error {
		logger.Info("order event",
			zap.String("type", string(event.Type)),
			zap.String("order_id", event.OrderID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	dispatcher.Subscribe(events.EventOrderAdmitted, audit)
	dispatcher.Subscribe(events.EventOrderPrinted, audit)
	dispatcher.Subscribe(events.EventOrderDeleted, audit)

	invalidate := func(ctx context.Context, event events.Event) error {
		ticketCache.Invalidate(ctx, event.OrderID)
		return nil
	}
	dispatcher.Subscribe(events.EventOrderPrinted, invalidate)
	dispatcher.Subscribe(events.EventOrderDeleted, invalidate)
}
