package dto

// ObservationCreateRequest carries a free-text note about a student.
type ObservationCreateRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Text      string `json:"text" validate:"required,min=1,max=4096"`
	SchoolID  uint   `json:"school_id"`
}
