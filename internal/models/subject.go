package models

import "time"

// Subject is a taught discipline. Names are unique within a school, not
// globally.
type Subject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_subjects_school_name" json:"name"`
	SchoolID  uint      `gorm:"not null;uniqueIndex:idx_subjects_school_name" json:"school_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
