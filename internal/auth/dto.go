package auth

import (
	"github.com/jordanvasquez/threadline-backend/internal/users"
)

// RegisterRequest captures the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the access token and user produced by register/login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
