package models

import "time"

// Staff is an authenticated actor: an administrator, supervisor or teacher.
// SchoolID is nil only for administrators, who are not bound to a tenant.
type Staff struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Registration string    `gorm:"size:64;uniqueIndex;not null" json:"registration"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	SchoolID     *uint     `gorm:"index" json:"school_id"`
	School       *School   `json:"school,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
