package dto

// StaffCreateRequest carries the fields for creating a staff member. SchoolID
// names the target school for administrators operating across tenants; for
// everyone else it is checked against their own school.
type StaffCreateRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Registration string `json:"registration" validate:"required,min=2,max=64"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required"`
	SchoolID     uint   `json:"school_id"`
}

// StaffUpdateRequest carries the mutable staff fields.
type StaffUpdateRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
	SchoolID uint   `json:"school_id"`
}
