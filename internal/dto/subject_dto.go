package dto

// SubjectCreateRequest carries the fields for creating a subject.
type SubjectCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	SchoolID uint   `json:"school_id"`
}

// SubjectUpdateRequest carries the fields for renaming a subject.
type SubjectUpdateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
