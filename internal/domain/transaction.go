package domain

import "time"

// Transaction Model
type Transaction struct {
	ID         uint       `gorm:"primaryKey"` // Primary key
	UserID     uint       // Foreign key to the borrowing User
	BookID     uint       // Foreign key to the issued Book
	IssueDate  time.Time  `gorm:"not null"` // Date the book was issued
	ReturnDate time.Time  `gorm:"not null"` // Due date: issue date + 15 days
	ReturnedAt *time.Time // Timestamp of the actual return, nil while the book is out
}
