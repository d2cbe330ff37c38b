package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tanyourpeach/tan-scheduler/internal/logging"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

const (
	keyServices  = "catalog:services"
	keyOpenSlots = "catalog:open_slots"

	defaultTTL = 5 * time.Minute
)

// Client caches the public catalog (active services, open slots) in redis.
// A nil *Client is valid and disables caching, so the service runs without
// redis configured.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: defaultTTL}, nil
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *Client) GetServices(ctx context.Context) ([]models.TanService, bool) {
	var services []models.TanService
	if !c.get(ctx, keyServices, &services) {
		return nil, false
	}
	return services, true
}

func (c *Client) SetServices(ctx context.Context, services []models.TanService) {
	c.set(ctx, keyServices, services)
}

func (c *Client) InvalidateServices(ctx context.Context) {
	c.del(ctx, keyServices)
}

func (c *Client) GetOpenSlots(ctx context.Context) ([]models.Availability, bool) {
	var slots []models.Availability
	if !c.get(ctx, keyOpenSlots, &slots) {
		return nil, false
	}
	return slots, true
}

func (c *Client) SetOpenSlots(ctx context.Context, slots []models.Availability) {
	c.set(ctx, keyOpenSlots, slots)
}

func (c *Client) InvalidateOpenSlots(ctx context.Context) {
	c.del(ctx, keyOpenSlots)
}

// Cache failures are logged and otherwise ignored; the database stays the
// source of truth.

func (c *Client) get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}

	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.L().Warn("cache get failed: " + err.Error())
		}
		return false
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		logging.L().Warn("cache decode failed: " + err.Error())
		return false
	}
	return true
}

func (c *Client) set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logging.L().Warn("cache set failed: " + err.Error())
	}
}

func (c *Client) del(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logging.L().Warn("cache invalidate failed: " + err.Error())
	}
}
