package models

import "time"

// Condition records a learning or health condition attached to a student.
// Free-text names are unique per student.
type Condition struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;uniqueIndex:idx_conditions_student_name" json:"student_id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:idx_conditions_student_name" json:"name"`
	ProofStatus string    `gorm:"size:64;not null" json:"proof_status"`
	Description string    `gorm:"size:1024" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
