package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"library_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Dates in membership responses carry day precision only
const dateLayout = "2006-01-02"

// AddMembershipRequest represents a membership creation request
type AddMembershipRequest struct {
	UserID   uint   `json:"user_id" binding:"required"` // Owning user ID
	Duration string `json:"duration"`                   // One of the accepted duration strings, defaults to "6 months"
}

// UpdateMembershipRequest represents an extension or cancellation
type UpdateMembershipRequest struct {
	MembershipID uint   `json:"membership_id" binding:"required"` // Membership to update
	Action       string `json:"action" binding:"required"`        // "extend" or "cancel"
	Duration     string `json:"duration"`                         // Extension duration, defaults to "6 months"
}

// AddMembershipHandler creates a membership whose expiry is derived from the
// requested duration. A user may hold several memberships at once.
func AddMembershipHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddMembershipRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Absent duration falls back to the shortest plan
		if req.Duration == "" {
			req.Duration = "6 months"
		}
		days, ok := domain.DurationDays[req.Duration] // Map duration string to day count
		if !ok {
			// Unrecognized duration string
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership duration"})
			return
		}
		// Expiry: today plus the mapped day count
		membership := domain.Membership{
			UserID:     req.UserID,               // Owning user
			ExpiryDate: today().AddDate(0, 0, days), // Derived expiry date
		}
		if err := db.Create(&membership).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":  req.UserID,   // Owning user ID
				"duration": req.Duration, // Requested duration
				"error":    err.Error(),  // Error message
			}).Error("Failed to add membership") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add membership"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"membership_id": membership.ID,                            // New membership ID
			"user_id":       req.UserID,                               // Owning user ID
			"expiry_date":   membership.ExpiryDate.Format(dateLayout), // Expiry date
		}).Info("Membership added") // Log creation
		invalidateMembershipCache(c) // Invalidate membership listing cache
		// Return the derived expiry date
		c.JSON(http.StatusOK, gin.H{
			"message":     "Membership added",                       // Success message
			"expiry_date": membership.ExpiryDate.Format(dateLayout), // Derived expiry
		})
	}
}

// UpdateMembershipHandler extends or cancels an existing membership.
// Extension is additive from the current expiry, not from today, so time
// remaining on the membership is preserved.
func UpdateMembershipHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateMembershipRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var membership domain.Membership // Fetch membership from database
		if err := db.First(&membership, req.MembershipID).Error; err != nil {
			// If membership not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
			return
		}
		// Dispatch on the requested action, case-insensitive
		switch strings.ToLower(req.Action) {
		case "extend":
			// Absent duration falls back to the shortest plan
			if req.Duration == "" {
				req.Duration = "6 months"
			}
			days, ok := domain.DurationDays[req.Duration] // Map duration string to day count
			if !ok {
				// Unrecognized duration string
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration"})
				return
			}
			// Extend from the current expiry to preserve remaining time
			membership.ExpiryDate = membership.ExpiryDate.AddDate(0, 0, days)
			if err := db.Save(&membership).Error; err != nil {
				// If saving fails, return internal server error
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extend membership"})
				return
			}
			// Log successful extension
			logrus.WithFields(logrus.Fields{
				"membership_id":   membership.ID,                            // Membership ID
				"duration":        req.Duration,                             // Extension duration
				"new_expiry_date": membership.ExpiryDate.Format(dateLayout), // New expiry date
			}).Info("Membership extended") // Log extension
			invalidateMembershipCache(c) // Invalidate membership listing cache
			// Return the new expiry date
			c.JSON(http.StatusOK, gin.H{
				"message":         "Membership extended",                    // Success message
				"new_expiry_date": membership.ExpiryDate.Format(dateLayout), // New expiry
			})
		case "cancel":
			// Cancellation deletes the membership row
			if err := db.Delete(&membership).Error; err != nil {
				// If deletion fails, return internal server error
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel membership"})
				return
			}
			// Log successful cancellation
			logrus.WithFields(logrus.Fields{
				"membership_id": membership.ID,     // Membership ID
				"user_id":       membership.UserID, // Owning user ID
			}).Info("Membership canceled") // Log cancellation
			invalidateMembershipCache(c)                                     // Invalidate membership listing cache
			c.JSON(http.StatusOK, gin.H{"message": "Membership canceled"}) // Return success response
		default:
			// Any other action string is rejected
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		}
	}
}
