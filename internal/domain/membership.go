package domain

import "time"

// Membership Model
type Membership struct {
	ID         uint      `gorm:"primaryKey"` // Primary key
	UserID     uint      `gorm:"not null"`   // Foreign key to User
	ExpiryDate time.Time `gorm:"not null"`   // Date the membership expires
}

// DurationDays maps the accepted membership duration strings to day counts
var DurationDays = map[string]int{
	"6 months": 180, // Half-year membership
	"1 year":   365, // One-year membership
	"2 years":  730, // Two-year membership
}
