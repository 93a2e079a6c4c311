package domain

// Book Model
type Book struct {
	ID           uint          `gorm:"primaryKey"`            // Primary key
	Title        string        `gorm:"not null"`              // Book title
	Author       string        `gorm:"not null"`              // Book author
	Available    bool          `gorm:"not null;default:true"` // Whether the book can be issued
	Transactions []Transaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"` // One-to-many relationship with Transaction
}
