package dto

import "github.com/hongminglow/atithi-inn/internal/models"

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AdminSecret string `json:"adminSecret,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by user login and registration.
type SessionResponse struct {
	Success   bool        `json:"success"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"`
	User      models.User `json:"user"`
}

type UserResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
}

type AdminResponse struct {
	Success bool         `json:"success"`
	Admin   models.Admin `json:"admin"`
}
