package api

import (
	"errors"   // Sentinel errors
	"net/http" // HTTP status codes
	"time"     // Date arithmetic

	"library_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// A book may only be issued for this many days at a time
const loanPeriodDays = 15

// errBookUnavailable signals that the conditional availability flip matched no row
var errBookUnavailable = errors.New("book not available")

// IssueBookRequest represents an issue request
type IssueBookRequest struct {
	UserID uint `json:"user_id" binding:"required"` // Borrowing user ID
	BookID uint `json:"book_id" binding:"required"` // Book to issue
}

// ReturnBookRequest represents a return request
type ReturnBookRequest struct {
	TransactionID uint `json:"transaction_id" binding:"required"` // Transaction being returned
}

// today returns the current date at midnight UTC; issue and due dates carry
// date semantics only
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// IssueBookHandler lends a book to a user: it flips availability to false,
// records the transaction, and computes the due date, all atomically.
// The flip is conditional on the previous state so two concurrent issues of
// the same book cannot both succeed.
func IssueBookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IssueBookRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		issueDate := today()                              // Issue date: today
		dueDate := issueDate.AddDate(0, 0, loanPeriodDays) // Due date: issue date + loan period
		var txn domain.Transaction                        // Transaction record to create
		// Atomic issue: conditional flip plus transaction insert
		err := db.Transaction(func(tx *gorm.DB) error {
			// Flip availability only if the book exists and is still available
			res := tx.Model(&domain.Book{}).
				Where("id = ? AND available = ?", req.BookID, true).
				Update("available", false)
			if res.Error != nil {
				return res.Error // Return error to rollback
			}
			// Zero rows affected: absent book or already issued
			if res.RowsAffected == 0 {
				return errBookUnavailable
			}
			// Create the transaction record
			txn = domain.Transaction{
				UserID:     req.UserID, // Borrowing user
				BookID:     req.BookID, // Issued book
				IssueDate:  issueDate,  // Issue date
				ReturnDate: dueDate,    // Due date
			}
			return tx.Create(&txn).Error // Save transaction, rollback on error
		})
		// Handle transaction result
		if errors.Is(err, errBookUnavailable) {
			// Book absent or already issued
			c.JSON(http.StatusBadRequest, gin.H{"error": "Book not available"})
			return
		}
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,  // Borrowing user ID
				"book_id": req.BookID,  // Book ID
				"error":   err.Error(), // Error message
			}).Error("Issue failed") // Log issue failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Issue failed"})
			return
		}
		// Log successful issue
		logrus.WithFields(logrus.Fields{
			"user_id":        req.UserID,                    // Borrowing user ID
			"book_id":        req.BookID,                    // Book ID
			"transaction_id": txn.ID,                        // New transaction ID
			"due_date":       dueDate.Format("2006-01-02"), // Due date
		}).Info("Book issued") // Log issue success
		invalidateBookCache(c) // Invalidate catalog and dashboard cache
		// Return the transaction identity
		c.JSON(http.StatusOK, gin.H{"message": "Book issued", "transaction_id": txn.ID})
	}
}

// ReturnBookHandler processes a return: the referenced book becomes available
// again and the transaction is stamped with the actual return time. The
// transaction row itself is retained as history.
func ReturnBookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReturnBookRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var txn domain.Transaction // Fetch transaction from database
		if err := db.First(&txn, req.TransactionID).Error; err != nil {
			// If transaction not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		// Atomic return: flip availability and stamp the return time
		err := db.Transaction(func(tx *gorm.DB) error {
			// Restore availability if the book still exists, regardless of state
			res := tx.Model(&domain.Book{}).
				Where("id = ?", txn.BookID).
				Update("available", true)
			if res.Error != nil {
				return res.Error // Return error to rollback
			}
			now := time.Now()   // Actual return time
			txn.ReturnedAt = &now // Stamp the transaction
			return tx.Save(&txn).Error // Save transaction, rollback on error
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"transaction_id": req.TransactionID, // Transaction ID
				"error":          err.Error(),       // Error message
			}).Error("Return failed") // Log return failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Return failed"})
			return
		}
		// Log successful return
		logrus.WithFields(logrus.Fields{
			"transaction_id": txn.ID,     // Transaction ID
			"book_id":        txn.BookID, // Book ID
			"user_id":        txn.UserID, // Borrowing user ID
		}).Info("Book returned") // Log return success
		invalidateBookCache(c)                                    // Invalidate catalog and dashboard cache
		c.JSON(http.StatusOK, gin.H{"message": "Book returned"}) // Return success response
	}
}
