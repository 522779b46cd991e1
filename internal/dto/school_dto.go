package dto

// SchoolCreateRequest carries the fields for creating a school.
type SchoolCreateRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Address string `json:"address" validate:"max=512"`
}

// SchoolUpdateRequest carries the mutable school fields.
type SchoolUpdateRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Address string `json:"address" validate:"max=512"`
}
