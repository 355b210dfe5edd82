package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const storefrontTTL = 2 * time.Minute

const (
	SectionPaymentMethods  = "payment_methods"
	SectionDeliveryMethods = "delivery_methods"
	SectionSliders         = "sliders"
)

// StorefrontCache shields the public storefront endpoints from hitting
// the database on every read. Values are JSON blobs keyed per store
// and section.
type StorefrontCache interface {
	Get(ctx context.Context, storeID snowflake.ID, section string, dest any) (bool, error)
	Set(ctx context.Context, storeID snowflake.ID, section string, value any)
	Invalidate(ctx context.Context, storeID snowflake.ID, sections ...string)
}

type redisCache struct {
	rdb *redis.Client
	log *zap.Logger
	ttl time.Duration
}

func NewStorefrontCache(rdb *redis.Client, log *zap.Logger) StorefrontCache {
	return &redisCache{
		rdb: rdb,
		log: log.Named("cache.storefront"),
		ttl: storefrontTTL,
	}
}

func storefrontKey(storeID snowflake.ID, section string) string {
	return fmt.Sprintf("storefront:%s:%s", storeID, section)
}

func (c *redisCache) Get(ctx context.Context, storeID snowflake.ID, section string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, storefrontKey(storeID, section)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set is best-effort: a cache write failure is logged, never surfaced.
func (c *redisCache) Set(ctx context.Context, storeID snowflake.ID, section string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("marshal cache value", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, storefrontKey(storeID, section), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set", zap.Error(err), zap.String("section", section))
	}
}

func (c *redisCache) Invalidate(ctx context.Context, storeID snowflake.ID, sections ...string) {
	if len(sections) == 0 {
		sections = []string{SectionPaymentMethods, SectionDeliveryMethods, SectionSliders}
	}
	keys := make([]string, 0, len(sections))
	for _, section := range sections {
		keys = append(keys, storefrontKey(storeID, section))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidate", zap.Error(err), zap.String("store_id", storeID.String()))
	}
}

// NoOpCache keeps the storefront working when redis is unavailable.
type NoOpCache struct{}

func (NoOpCache) Get(ctx context.Context, storeID snowflake.ID, section string, dest any) (bool, error) {
	return false, nil
}

func (NoOpCache) Set(ctx context.Context, storeID snowflake.ID, section string, value any) {}

func (NoOpCache) Invalidate(ctx context.Context, storeID snowflake.ID, sections ...string) {}
