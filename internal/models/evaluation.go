package models

import "time"

// Evaluation is a teacher's grading of one student on one activity. The
// (student, activity) pair is the natural key used by the upsert path.
type Evaluation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;uniqueIndex:idx_evaluations_student_activity" json:"student_id"`
	ActivityID  uint      `gorm:"not null;uniqueIndex:idx_evaluations_student_activity" json:"activity_id"`
	Activity    Activity  `json:"activity,omitempty"`
	TeacherID   uint      `gorm:"index;not null" json:"teacher_id"`
	Teacher     Staff     `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Score       float64   `gorm:"not null" json:"score"`
	Feedback    string    `gorm:"size:2048" json:"feedback"`
	OnTime      bool      `json:"on_time"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
