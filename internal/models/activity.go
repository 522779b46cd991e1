package models

import "time"

// Activity is a graded task (test, project, presentation). Its subject and
// teacher must belong to the same school as the activity itself.
type Activity struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Kind            string    `gorm:"size:64;not null" json:"kind"`
	Location        string    `gorm:"size:255" json:"location"`
	Duration        string    `gorm:"size:64" json:"duration"`
	Dynamics        string    `gorm:"size:255" json:"dynamics"`
	OpenBook        bool      `json:"open_book"`
	CreativeFreedom bool      `json:"creative_freedom"`
	Description     string    `gorm:"size:1024" json:"description"`
	MaxScore        float64   `gorm:"not null" json:"max_score"`
	SubjectID       uint      `gorm:"index;not null" json:"subject_id"`
	Subject         Subject   `json:"subject,omitempty"`
	TeacherID       uint      `gorm:"index;not null" json:"teacher_id"`
	Teacher         Staff     `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	SchoolID        uint      `gorm:"index;not null" json:"school_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
