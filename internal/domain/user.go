package domain

// User Model
type User struct {
	ID           uint          `gorm:"primaryKey"`      // Primary key
	Username     string        `gorm:"unique;not null"` // Unique username
	Password     string        `gorm:"not null"`        // Hashed password
	Role         string        `gorm:"not null"`        // Role: Admin or User
	Memberships  []Membership  // One-to-many relationship with Membership
	Transactions []Transaction // One-to-many relationship with Transaction
}
