package domain

import "time"

// Tipos de registro soportados.
const (
	SignupEmail  = "EMAIL"
	SignupGoogle = "GOOGLE"
	SignupApple  = "APPLE"
)

type User struct {
	ID                string     `json:"id"`
	UserName          string     `json:"user_name,omitempty"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	SignupType        string     `json:"signup_type"`
	FCMToken          string     `json:"-"`
	Avatar            string     `json:"avatar,omitempty"`
	ResetOTPHash      string     `json:"-"`
	ResetOTPExpiresAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
