// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// Identity is the credential record. It deliberately knows nothing
// about roles; role ownership lives in the profile tables.
type Identity struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	TokenVersion int       `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type AuthSession struct {
	ID           string     `db:"id"`
	IdentityID   string     `db:"identity_id"`
	TokenHash    string     `db:"token_hash"`
	FamilyID     string     `db:"family_id"`
	ExpiresAt    time.Time  `db:"expires_at"`
	CreatedAt    time.Time  `db:"created_at"`
	IsUsed       bool       `db:"is_used"`
	UsedAt       *time.Time `db:"used_at"`
	RevokedAt    *time.Time `db:"revoked_at"`
	ReplacedByID *string    `db:"replaced_by_id"`
	UserAgent    string     `db:"user_agent"`
	IPAddress    string     `db:"ip_address"`
}

func (s *AuthSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *AuthSession) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *AuthSession) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked() && !s.IsUsed
}
