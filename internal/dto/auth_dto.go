package dto

import "time"

// RegisterAdminRequest carries a gated admin self-registration.
type RegisterAdminRequest struct {
	Username  string `json:"username" validate:"required,min=1"`
	Password  string `json:"password" validate:"required,min=6"`
	AdminCode string `json:"adminCode" validate:"required"`
}

// LoginRequest carries a username/password login attempt.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a credential.
type UserResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse bundles the issued token with the account it belongs to.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyResponse reports the role bound to a verified token.
type VerifyResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
