package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
)

const menuCacheKey = "geprek:menu:available"

// MenuCache menyimpan daftar menu tersedia di Redis. Nil client = cache mati.
type MenuCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewMenuCache(rdb *redis.Client, ttl time.Duration) *MenuCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MenuCache{rdb: rdb, ttl: ttl}
}

func (c *MenuCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *MenuCache) Get(ctx context.Context) ([]models.MenuItem, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, menuCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.ErrorLogger.Errorf("Menu cache read failed: %v", err)
		}
		return nil, false
	}
	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		utils.ErrorLogger.Errorf("Menu cache holds invalid payload: %v", err)
		return nil, false
	}
	return items, true
}

func (c *MenuCache) Set(ctx context.Context, items []models.MenuItem) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, menuCacheKey, raw, c.ttl).Err(); err != nil {
		utils.ErrorLogger.Errorf("Menu cache write failed: %v", err)
	}
}

func (c *MenuCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Del(ctx, menuCacheKey).Err(); err != nil {
		utils.ErrorLogger.Errorf("Menu cache invalidate failed: %v", err)
	}
}
