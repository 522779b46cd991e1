package models

import "time"

// Student is an aggregate root: deleting one removes its conditions,
// evaluations, observations, bimonthly grades and insights in the same
// transaction.
type Student struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:255;not null" json:"name"`
	Registration string      `gorm:"size:64;uniqueIndex;not null" json:"registration"`
	Age          int         `json:"age"`
	ClassID      uint        `gorm:"index;not null" json:"class_id"`
	Class        Class       `json:"class,omitempty"`
	SchoolID     uint        `gorm:"index;not null" json:"school_id"`
	Conditions   []Condition `json:"conditions,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
