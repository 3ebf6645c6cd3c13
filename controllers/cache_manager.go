package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"
)

// CacheManager handles Redis caching for the product listing. Invalidation
// is a version bump, so stale keys age out via TTL instead of scans.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{redis: redis, ttl: DefaultCacheTTL}
}

// GetProductList retrieves a cached product listing response.
func (cm *CacheManager) GetProductList(ctx context.Context, params models.ListProductsParams) (map[string]interface{}, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listCacheKey(version, params)).Result()
	if err != nil {
		return nil, false
	}

	var response map[string]interface{}
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return response, true
}

// SetProductListAsync caches a product listing response off the request path.
func (cm *CacheManager) SetProductListAsync(params models.ListProductsParams, response map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(ctx)
		if err != nil || version == 0 {
			version, err = cm.redis.Incr(ctx, CacheVersionKey).Result()
			if err != nil {
				return
			}
		}

		data, err := json.Marshal(response)
		if err != nil {
			return
		}
		if err := cm.redis.Set(ctx, cm.listCacheKey(version, params), data, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the cache version after catalog writes.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	return cm.redis.Incr(ctx, CacheVersionKey).Err()
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	version, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return version, err
}

func (cm *CacheManager) listCacheKey(version int64, params models.ListProductsParams) string {
	minPrice, maxPrice, inStock := "", "", ""
	if params.MinPrice != nil {
		minPrice = fmt.Sprintf("%g", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%g", *params.MaxPrice)
	}
	if params.InStock != nil {
		inStock = fmt.Sprintf("%t", *params.InStock)
	}
	return fmt.Sprintf("%s%d:%d:%d:%s:%s:%s:%s:%s",
		ProductListCachePrefix, version, params.Page, params.PerPage,
		params.Category, params.Brand, minPrice, maxPrice, inStock)
}
