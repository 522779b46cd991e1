package dto

// InsightGenerateRequest asks for a fresh generated insight for a student.
type InsightGenerateRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Prompt    string `json:"prompt" validate:"max=2048"`
	SchoolID  uint   `json:"school_id"`
}
