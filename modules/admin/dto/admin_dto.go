package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
}
