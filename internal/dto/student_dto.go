package dto

// StudentCreateRequest carries the fields for enrolling a student. SchoolID
// selects the target school for administrators; the resolved operating school
// always wins over this field.
type StudentCreateRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Registration string `json:"registration" validate:"required,min=2,max=64"`
	Age          int    `json:"age" validate:"required,min=1,max=120"`
	ClassID      uint   `json:"class_id" validate:"required"`
	SchoolID     uint   `json:"school_id"`
}

// StudentUpdateRequest carries the mutable student fields.
type StudentUpdateRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Registration string `json:"registration" validate:"required,min=2,max=64"`
	Age          int    `json:"age" validate:"required,min=1,max=120"`
	ClassID      uint   `json:"class_id" validate:"required"`
}
