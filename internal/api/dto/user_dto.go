package dto

// LoginRequest is the name-only login payload.
type LoginRequest struct {
	Name string `json:"name" form:"name"`
}
