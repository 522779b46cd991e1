package dto

// GradeUpsertRequest carries one bimonthly grade keyed by the
// (student, subject, bimester) triple.
type GradeUpsertRequest struct {
	StudentID        uint     `json:"student_id" validate:"required"`
	SubjectID        uint     `json:"subject_id" validate:"required"`
	Bimester         int      `json:"bimester" validate:"required,min=1,max=4"`
	Score            float64  `json:"score" validate:"gte=0,lte=10"`
	RemediationScore *float64 `json:"remediation_score" validate:"omitempty,gte=0,lte=10"`
	SchoolID         uint     `json:"school_id"`
}

// GradeBatchRequest carries several grades for one student that must land
// together or not at all.
type GradeBatchRequest struct {
	StudentID uint             `json:"student_id" validate:"required"`
	Items     []GradeBatchItem `json:"items" validate:"required,min=1,dive"`
	SchoolID  uint             `json:"school_id"`
}

// GradeBatchItem is a single entry inside a batch upsert.
type GradeBatchItem struct {
	SubjectID        uint     `json:"subject_id" validate:"required"`
	Bimester         int      `json:"bimester" validate:"required,min=1,max=4"`
	Score            float64  `json:"score" validate:"gte=0,lte=10"`
	RemediationScore *float64 `json:"remediation_score" validate:"omitempty,gte=0,lte=10"`
}

// GradeDeleteRequest identifies a grade by its natural key.
type GradeDeleteRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	SubjectID uint `json:"subject_id" validate:"required"`
	Bimester  int  `json:"bimester" validate:"required,min=1,max=4"`
	SchoolID  uint `json:"school_id"`
}
