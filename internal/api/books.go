package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"library_system/internal/domain" // Importing domain models
	"library_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// BookResponse represents a catalog entry in the listing
type BookResponse struct {
	ID        uint   `json:"id"`        // Book ID
	Title     string `json:"title"`     // Book title
	Author    string `json:"author"`    // Book author
	Available bool   `json:"available"` // Availability flag
}

// AddBookRequest represents a book creation request
type AddBookRequest struct {
	Title  string `json:"title" binding:"required"`  // Title must be provided
	Author string `json:"author" binding:"required"` // Author must be provided
}

// UpdateBookRequest represents a partial book update; absent fields are kept
type UpdateBookRequest struct {
	Title  *string `json:"title"`  // New title, if present
	Author *string `json:"author"` // New author, if present
}

// ListBooksHandler returns every book in the catalog
func ListBooksHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []BookResponse   // Cached catalog listing
		// Try to get cached response
		found, err := utils.GetCache(ctx, rdb, booksCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached listing
			return
		}
		var books []domain.Book // Slice to hold books
		if err := db.Find(&books).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}
		// Map books to response format
		resp := make([]BookResponse, len(books))
		for i, b := range books {
			resp[i] = BookResponse{
				ID:        b.ID,        // Book ID
				Title:     b.Title,     // Title
				Author:    b.Author,    // Author
				Available: b.Available, // Availability flag
			}
		}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, booksCacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp) // Return the listing
	}
}

// AddBookHandler inserts a new book; new books are always available
func AddBookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddBookRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Availability is forced to true regardless of input
		book := domain.Book{Title: req.Title, Author: req.Author, Available: true}
		if err := db.Create(&book).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"title": req.Title,   // Book title
				"error": err.Error(), // Error message
			}).Error("Failed to add book") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add book"})
			return
		}
		invalidateBookCache(c) // Invalidate catalog cache
		// Return the new book's identity
		c.JSON(http.StatusOK, gin.H{
			"message": "Book added", // Success message
			"book":    gin.H{"id": book.ID, "title": book.Title},
		})
	}
}

// UpdateBookHandler applies a partial update to a book's title and author.
// Availability is never mutated here, only by issue and return.
func UpdateBookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateBookRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var book domain.Book // Fetch book from database
		if err := db.First(&book, c.Param("id")).Error; err != nil {
			// If book not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		// Overwrite only the fields present in the request
		if req.Title != nil {
			book.Title = *req.Title // Update title
		}
		if req.Author != nil {
			book.Author = *req.Author // Update author
		}
		if err := db.Save(&book).Error; err != nil {
			// If saving fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
			return
		}
		invalidateBookCache(c)                                  // Invalidate catalog cache
		c.JSON(http.StatusOK, gin.H{"message": "Book updated"}) // Return success response
	}
}

// DeleteBookHandler removes a book from the catalog
func DeleteBookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var book domain.Book // Fetch book from database
		if err := db.First(&book, c.Param("id")).Error; err != nil {
			// If book not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		if err := db.Delete(&book).Error; err != nil {
			// If deletion fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
			return
		}
		// Log the removal
		logrus.WithFields(logrus.Fields{
			"book_id": book.ID,    // Book ID
			"title":   book.Title, // Title
		}).Info("Book deleted") // Log deletion
		invalidateBookCache(c)                                  // Invalidate catalog cache
		c.JSON(http.StatusOK, gin.H{"message": "Book deleted"}) // Return success response
	}
}
