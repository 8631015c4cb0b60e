package dto

import (
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PhoneOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type PhoneOTPResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
	DebugCode string    `json:"debug_code,omitempty"`
}

type PhoneLoginRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	Email     string       `json:"email,omitempty"`
	User      *models.User `json:"user"`
}
