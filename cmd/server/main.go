package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"library_system/internal/api"        // Custom package for API handlers
	"library_system/internal/config"     // Custom package for configuration
	"library_system/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client for the listing/dashboard read-cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/signup", api.SignupHandler(db))                                 // Signup endpoint
	r.POST("/login", api.LoginHandler(db, cfg.JWTSecret, cfg.TokenExpireMinutes)) // Login endpoint

	// Library routes (protected by JWT)
	libraryGroup := r.Group("/")
	// Protect library routes with JWT middleware and inject Redis client into context
	libraryGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})
	libraryGroup.GET("/books", api.ListBooksHandler(db, redisClient))     // Catalog listing endpoint
	libraryGroup.POST("/books", api.AddBookHandler(db))                   // Add book endpoint
	libraryGroup.PUT("/books/:id", api.UpdateBookHandler(db))             // Update book endpoint
	libraryGroup.DELETE("/books/:id", api.DeleteBookHandler(db))          // Delete book endpoint
	libraryGroup.POST("/issue_book", api.IssueBookHandler(db))            // Issue endpoint
	libraryGroup.POST("/return_book", api.ReturnBookHandler(db))          // Return endpoint
	libraryGroup.POST("/add_membership", api.AddMembershipHandler(db))    // Add membership endpoint
	libraryGroup.POST("/update_membership", api.UpdateMembershipHandler(db)) // Update membership endpoint

	// Reporting routes (protected, admin only)
	adminGroup := r.Group("/")
	// Protect reporting routes with JWT and AdminOnly middleware
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/dashboard_data", api.DashboardHandler(db, redisClient))     // Dashboard endpoint
	adminGroup.GET("/memberships", api.ListMembershipsHandler(db, redisClient)) // Membership listing endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
