package api

import (
	"net/http" // HTTP status codes

	"library_system/internal/domain" // Importing domain models
	"library_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// SignupRequest represents a signup request
type SignupRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	Role     string `json:"role" binding:"required"`     // Role must be provided: Admin or User
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse represents a successful login
type AuthResponse struct {
	Token string `json:"token"` // JWT token
	Role  string `json:"role"`  // Role of the authenticated user
}

// SignupHandler registers a new library user
func SignupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Reject the signup up front when the username is taken
		var existing domain.User
		if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
			// If a row came back, the username already exists
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Username: req.Username, Password: string(hash), Role: req.Role}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Unique-constraint race: another signup with the same username committed first
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating user"})
			return
		}
		// Log successful signup
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
			"role":     user.Role,     // Role
		}).Info("User signed up") // Log signup
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "User signed up successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string, expireMinutes int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret, expireMinutes)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token and role in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, Role: user.Role})
	}
}
