package dto

// ActivityCreateRequest carries the fields for creating an activity.
type ActivityCreateRequest struct {
	Kind            string  `json:"kind" validate:"required,min=2,max=255"`
	Location        string  `json:"location" validate:"max=255"`
	Duration        string  `json:"duration" validate:"max=64"`
	Dynamics        string  `json:"dynamics" validate:"max=1024"`
	OpenBook        bool    `json:"open_book"`
	CreativeFreedom bool    `json:"creative_freedom"`
	Description     string  `json:"description" validate:"max=2048"`
	MaxScore        float64 `json:"max_score" validate:"required,gt=0"`
	SubjectID       uint    `json:"subject_id" validate:"required"`
	TeacherID       uint    `json:"teacher_id" validate:"required"`
	SchoolID        uint    `json:"school_id"`
}

// ActivityUpdateRequest carries the mutable activity fields.
type ActivityUpdateRequest struct {
	Kind            string  `json:"kind" validate:"required,min=2,max=255"`
	Location        string  `json:"location" validate:"max=255"`
	Duration        string  `json:"duration" validate:"max=64"`
	Dynamics        string  `json:"dynamics" validate:"max=1024"`
	OpenBook        bool    `json:"open_book"`
	CreativeFreedom bool    `json:"creative_freedom"`
	Description     string  `json:"description" validate:"max=2048"`
	MaxScore        float64 `json:"max_score" validate:"required,gt=0"`
	SubjectID       uint    `json:"subject_id" validate:"required"`
	TeacherID       uint    `json:"teacher_id" validate:"required"`
}
