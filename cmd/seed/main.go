package main

import (
	"fmt" // Sample data formatting

	"library_system/internal/config" // Custom import path (Config)
	"library_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for seeding demo data: a fresh schema, two users and a
// small sample catalog
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Database Source Name (DSN) for MySQL connection
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}

	// Start from a clean schema
	if err := db.Migrator().DropTable(&domain.Transaction{}, &domain.Membership{}, &domain.Book{}, &domain.User{}); err != nil {
		logrus.Fatalf("failed to drop tables: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Book{}, &domain.Membership{}, &domain.Transaction{}); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Create sample users
	admin := domain.User{Username: "admin", Password: mustHash("admin123"), Role: "Admin"}
	user1 := domain.User{Username: "user1", Password: mustHash("user123"), Role: "User"}
	if err := db.Create(&admin).Error; err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}
	if err := db.Create(&user1).Error; err != nil {
		logrus.Fatalf("failed to seed user: %v", err)
	}

	// Create sample books
	for i := 1; i <= 10; i++ {
		book := domain.Book{
			Title:     fmt.Sprintf("Sample Book Title %d", i), // Sample title
			Author:    fmt.Sprintf("Author %d", i),            // Sample author
			Available: true,                                   // New books are available
		}
		if err := db.Create(&book).Error; err != nil {
			logrus.Fatalf("failed to seed book %d: %v", i, err)
		}
	}

	logrus.Info("Database seeded with sample users and books.") // Log successful seeding
}

// mustHash hashes a seed password, aborting on failure
func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash seed password: %v", err)
	}
	return string(hash)
}
