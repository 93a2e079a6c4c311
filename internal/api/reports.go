package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"library_system/internal/domain" // Importing domain models
	"library_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// DashboardResponse represents the dashboard counters
type DashboardResponse struct {
	IssuedBooks int `json:"issued_books"` // Number of books currently issued
	TotalBooks  int `json:"total_books"`  // Total number of books in the catalog
}

// MembershipResponse represents a membership listing entry
type MembershipResponse struct {
	ID         uint   `json:"id"`          // Membership ID
	UserID     uint   `json:"user_id"`     // Owning user ID
	ExpiryDate string `json:"expiry_date"` // Expiry date, day precision
}

// DashboardHandler returns catalog-wide counters: total books and the number
// currently issued. Issued books are the ones whose availability flag is off.
func DashboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()  // Context for Redis operations
		var cached DashboardResponse // Cached counters
		// Try to get cached response
		found, err := utils.GetCache(ctx, rdb, dashboardCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached counters
			return
		}
		var books []domain.Book // Slice to hold books
		if err := db.Find(&books).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}
		issued := 0 // Count of issued books
		for _, b := range books {
			if !b.Available {
				issued++ // Unavailable means currently issued
			}
		}
		resp := DashboardResponse{IssuedBooks: issued, TotalBooks: len(books)}
		// Cache the counters for future requests
		_ = utils.SetCache(ctx, rdb, dashboardCacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp) // Return the counters
	}
}

// ListMembershipsHandler returns every membership, unfiltered
func ListMembershipsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()     // Context for Redis operations
		var cached []MembershipResponse // Cached membership listing
		// Try to get cached response
		found, err := utils.GetCache(ctx, rdb, membershipsCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached listing
			return
		}
		var memberships []domain.Membership // Slice to hold memberships
		if err := db.Find(&memberships).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch memberships"})
			return
		}
		// Map memberships to response format
		resp := make([]MembershipResponse, len(memberships))
		for i, m := range memberships {
			resp[i] = MembershipResponse{
				ID:         m.ID,                            // Membership ID
				UserID:     m.UserID,                        // Owning user ID
				ExpiryDate: m.ExpiryDate.Format(dateLayout), // Expiry date
			}
		}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, membershipsCacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp) // Return the listing
	}
}
