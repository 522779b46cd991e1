package dto

// EvaluationUpsertRequest carries one grading of one student on one activity.
// The (student, activity) pair is the natural key; resubmitting overwrites
// the previous grading.
type EvaluationUpsertRequest struct {
	StudentID  uint    `json:"student_id" validate:"required"`
	ActivityID uint    `json:"activity_id" validate:"required"`
	Score      float64 `json:"score" validate:"gte=0"`
	Feedback   string  `json:"feedback" validate:"max=2048"`
	OnTime     bool    `json:"on_time"`
	SchoolID   uint    `json:"school_id"`
}
