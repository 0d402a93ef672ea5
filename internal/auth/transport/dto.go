package transport

import "time"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type AuthResponse struct {
	AccessToken string          `json:"accessToken"`
	User        ProfileResponse `json:"user"`
}

type ProfileResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Phone      *string   `json:"phone,omitempty"`
	Role       string    `json:"role"`
	BusinessID *string   `json:"businessId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
