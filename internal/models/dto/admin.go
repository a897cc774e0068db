package dto

import "github.com/hongminglow/atithi-inn/internal/models"

type AdminRegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	SecretKey   string `json:"secretKey"`
	AdminSecret string `json:"adminSecret"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ValidateKeyRequest struct {
	Email     string `json:"email"`
	SecretKey string `json:"secretKey"`
}

type AdminSessionResponse struct {
	Success   bool         `json:"success"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
	Admin     models.Admin `json:"admin"`
}

type ValidateKeyResponse struct {
	Success bool `json:"success"`
	IsValid bool `json:"isValid"`
}

type UsersResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Users   []models.User `json:"users"`
}
