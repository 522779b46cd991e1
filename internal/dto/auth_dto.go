package dto

// LoginRequest carries the credentials for the login endpoint.
type LoginRequest struct {
	Registration string `json:"registration" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// LoginStaff is the actor summary returned alongside a fresh token.
type LoginStaff struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	SchoolID *uint  `json:"school_id"`
}

// LoginResponse is the payload returned on successful authentication.
type LoginResponse struct {
	Token string     `json:"token"`
	Staff LoginStaff `json:"staff"`
}
