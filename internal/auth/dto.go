// AngelaMos | 2026
// dto.go

package auth

import (
	"time"

	"github.com/carterperez-dev/jobboard/internal/identity"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RegisterRequest carries the credential pair plus the seed fields for
// the initial profile. Admin accounts are never self-registered.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role"     validate:"required,oneof=user employer"`

	FullName    string `json:"full_name"    validate:"required_if=Role user,max=100"`
	CompanyName string `json:"company_name" validate:"required_if=Role employer,max=200"`
	Phone       string `json:"phone"        validate:"omitempty,max=30"`
	Location    string `json:"location"     validate:"omitempty,max=200"`
	Industry    string `json:"industry"     validate:"omitempty,max=100"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type IdentityResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Identity IdentityResponse  `json:"identity"`
	Profile  *identity.Profile `json:"profile,omitempty"`
	Tokens   TokenResponse     `json:"tokens"`
}

type MeResponse struct {
	Identity IdentityResponse  `json:"identity"`
	Profile  *identity.Profile `json:"profile,omitempty"`
}
