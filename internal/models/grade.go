package models

import "time"

// BimonthlyGrade is a per-bimester subject grade. The (student, subject,
// bimester) triple is the natural key used by single and batch upserts.
type BimonthlyGrade struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StudentID        uint      `gorm:"not null;uniqueIndex:idx_grades_student_subject_bimester" json:"student_id"`
	SubjectID        uint      `gorm:"not null;uniqueIndex:idx_grades_student_subject_bimester" json:"subject_id"`
	Subject          Subject   `json:"subject,omitempty"`
	Bimester         int       `gorm:"not null;uniqueIndex:idx_grades_student_subject_bimester" json:"bimester"`
	Score            float64   `gorm:"not null" json:"score"`
	RemediationScore *float64  `json:"remediation_score"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
