package dto

import "time"

// UserResponse representação pública de um usuário.
type UserResponse struct {
	UID            string    `json:"uid"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhotoURL       string    `json:"photo_url,omitempty"`
	Role           string    `json:"role"`
	UplineUID      string    `json:"upline_uid,omitempty"`
	CommissionRate int       `json:"commission_rate"`
	MlmEnabled     bool      `json:"mlm_enabled"`
	CreatedAt      time.Time `json:"created_at"`
}

// TeamMemberResponse um membro do downline com sua distância em níveis.
type TeamMemberResponse struct {
	UserResponse
	Level int `json:"level"`
}

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
