package dto

// ConditionCreateRequest carries a condition to attach to a student.
type ConditionCreateRequest struct {
	StudentID   uint   `json:"student_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=2,max=255"`
	ProofStatus string `json:"proof_status" validate:"required,oneof=reported under_review proven"`
	Description string `json:"description" validate:"max=1024"`
	SchoolID    uint   `json:"school_id"`
}
