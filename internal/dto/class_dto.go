package dto

// ClassCreateRequest carries the fields for creating a class.
type ClassCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	SchoolID uint   `json:"school_id"`
}

// ClassUpdateRequest carries the fields for renaming a class.
type ClassUpdateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
