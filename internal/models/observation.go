package models

import "time"

// Observation is an append-only note a staff member leaves about a student.
// There is no update path; newer notes supersede older ones by timestamp.
type Observation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	TeacherID uint      `gorm:"index;not null" json:"teacher_id"`
	Text      string    `gorm:"size:4096;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
