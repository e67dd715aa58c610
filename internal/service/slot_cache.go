package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

const slotCacheKeyPrefix = "slots:"

// SlotDaySnapshot is the cached form of one generated day, bookings already
// overlaid. It is a throwaway read model: any schedule mutation or new booking
// invalidates it, and the TTL bounds staleness either way.
type SlotDaySnapshot struct {
	Date        string        `json:"date"`
	Timezone    string        `json:"timezone"`
	WindowStart string        `json:"window_start,omitempty"`
	WindowEnd   string        `json:"window_end,omitempty"`
	Slots       []entity.Slot `json:"slots"`
	Message     string        `json:"message,omitempty"`
}

// SlotCache keeps generated slot days in Redis so repeated calendar views do
// not re-derive the same grid. Lookups degrade to a miss on any Redis problem;
// slot generation is cheap enough that the cache is purely an optimization.
type SlotCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSlotCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotCache {
	return &SlotCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func slotCacheKey(providerID uuid.UUID, date string) string {
	return fmt.Sprintf("%s%s:%s", slotCacheKeyPrefix, providerID, date)
}

// Get returns the cached day or nil on a miss.
func (c *SlotCache) Get(ctx context.Context, providerID uuid.UUID, date string) *SlotDaySnapshot {
	if c == nil || c.redisClient == nil {
		return nil
	}

	payload, err := c.redisClient.Get(ctx, slotCacheKey(providerID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Slot cache read failed for provider %s: %+v", providerID, err)
		}
		return nil
	}

	var snapshot SlotDaySnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		c.log.Warnf("Slot cache payload corrupt for provider %s: %+v", providerID, err)
		return nil
	}
	return &snapshot
}

// Set stores the generated day. Failures are logged and swallowed.
func (c *SlotCache) Set(ctx context.Context, providerID uuid.UUID, date string, snapshot *SlotDaySnapshot) {
	if c == nil || c.redisClient == nil || snapshot == nil {
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		c.log.Warnf("Slot cache marshal failed for provider %s: %+v", providerID, err)
		return
	}

	if err := c.redisClient.Set(ctx, slotCacheKey(providerID, date), payload, c.ttl).Err(); err != nil {
		c.log.Warnf("Slot cache write failed for provider %s: %+v", providerID, err)
	}
}

// InvalidateDate drops the cached day after a booking takes one of its slots.
func (c *SlotCache) InvalidateDate(ctx context.Context, providerID uuid.UUID, date string) {
	if c == nil || c.redisClient == nil {
		return
	}

	if err := c.redisClient.Del(ctx, slotCacheKey(providerID, date)).Err(); err != nil {
		c.log.Warnf("Slot cache invalidation failed for provider %s date %s: %+v", providerID, date, err)
	}
}

// InvalidateProvider drops every cached day of a provider after a schedule
// mutation, which can change any future date.
func (c *SlotCache) InvalidateProvider(ctx context.Context, providerID uuid.UUID) {
	if c == nil || c.redisClient == nil {
		return
	}

	pattern := fmt.Sprintf("%s%s:*", slotCacheKeyPrefix, providerID)
	keys, err := c.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		c.log.Warnf("Slot cache key scan failed for provider %s: %+v", providerID, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Slot cache invalidation failed for provider %s: %+v", providerID, err)
	}
}
