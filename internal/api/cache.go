package api

import (
	"context" // Context for Redis operations

	"library_system/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys for the read-heavy listing endpoints
const (
	booksCacheKey       = "books:all"       // Full catalog listing
	dashboardCacheKey   = "dashboard:data"  // Dashboard counters
	membershipsCacheKey = "memberships:all" // Full membership listing
)

// redisFromContext returns the Redis client injected by the router, or nil
// when the service runs cache-less
func redisFromContext(c *gin.Context) *redis.Client {
	if v, ok := c.Get("redisClient"); ok {
		if rdb, ok := v.(*redis.Client); ok {
			return rdb // Client found in context
		}
	}
	return nil // No cache available
}

// invalidateBookCache drops the catalog and dashboard cache entries after a
// mutation that changes book rows or availability
func invalidateBookCache(c *gin.Context) {
	_ = utils.DeleteCache(context.Background(), redisFromContext(c), booksCacheKey, dashboardCacheKey)
}

// invalidateMembershipCache drops the membership listing cache entry
func invalidateMembershipCache(c *gin.Context) {
	_ = utils.DeleteCache(context.Background(), redisFromContext(c), membershipsCacheKey)
}
