package auth

import "time"

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	VendorName string
}

type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the opaque session token the handler sets as a cookie.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

type UserDTO struct {
	UserID     string     `json:"user_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	VendorName string     `json:"vendor_name,omitempty"`
	Position   string     `json:"position,omitempty"`
	Role       string     `json:"role"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
