package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/voucher-service/internal/domain"
)

const ticketKeyPrefix = "ticket:"

// TicketCache is a read-through Redis cache for public ticket lookups.
// Cache faults are logged and degrade to the database; they never fail the
// request.
type TicketCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTicketCache builds the cache. A nil client or non-positive TTL yields
// a disabled cache that misses on every call.
func NewTicketCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *TicketCache {
	return &TicketCache{client: client, ttl: ttl, logger: logger}
}

func (c *TicketCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get returns the cached ticket detail, or miss.
func (c *TicketCache) Get(ctx context.Context, id string) (*domain.OrderDetail, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, ticketKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("ticket cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var detail domain.OrderDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		c.logger.Warn("ticket cache decode failed", zap.Error(err))
		return nil, false
	}
	return &detail, true
}

// Set stores the ticket detail with the configured TTL.
func (c *TicketCache) Set(ctx context.Context, detail *domain.OrderDetail) {
	if !c.enabled() || detail == nil {
		return
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, ticketKeyPrefix+detail.ID, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("ticket cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry for the given ticket id.
func (c *TicketCache) Invalidate(ctx context.Context, id string) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, ticketKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("ticket cache invalidation failed", zap.Error(err))
	}
}
