// AngelaMos | 2026
// profile.go

package identity

import (
	"time"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type UserProfile struct {
	ID              string          `db:"id"               json:"id"`
	Email           string          `db:"email"            json:"email"`
	FullName        string          `db:"full_name"        json:"full_name"`
	Phone           *string         `db:"phone"            json:"phone,omitempty"`
	Location        *string         `db:"location"         json:"location,omitempty"`
	Skills          core.StringList `db:"skills"           json:"skills,omitempty"`
	ExperienceYears int             `db:"experience_years" json:"experience_years"`
	ResumeURL       *string         `db:"resume_url"       json:"resume_url,omitempty"`
	Bio             *string         `db:"bio"              json:"bio,omitempty"`
	IsActive        bool            `db:"is_active"        json:"is_active"`
	CreatedAt       time.Time       `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"       json:"updated_at"`
}

type EmployerProfile struct {
	ID          string    `db:"id"           json:"id"`
	Email       string    `db:"email"        json:"email"`
	CompanyName string    `db:"company_name" json:"company_name"`
	Phone       *string   `db:"phone"        json:"phone,omitempty"`
	Location    *string   `db:"location"     json:"location,omitempty"`
	Industry    *string   `db:"industry"     json:"industry,omitempty"`
	CompanySize *string   `db:"company_size" json:"company_size,omitempty"`
	Website     *string   `db:"website"      json:"website,omitempty"`
	Description *string   `db:"description"  json:"description,omitempty"`
	LogoURL     *string   `db:"logo_url"     json:"logo_url,omitempty"`
	IsApproved  bool      `db:"is_approved"  json:"is_approved"`
	IsActive    bool      `db:"is_active"    json:"is_active"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}

type AdminProfile struct {
	ID        string    `db:"id"         json:"id"`
	Email     string    `db:"email"      json:"email"`
	FullName  string    `db:"full_name"  json:"full_name"`
	IsActive  bool      `db:"is_active"  json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Profile is an explicit tagged union over the three variants. The Role
// tag is authoritative; the shape is never inferred from which optional
// fields happen to be present.
type Profile struct {
	Role     Role             `json:"role"`
	User     *UserProfile     `json:"user,omitempty"`
	Employer *EmployerProfile `json:"employer,omitempty"`
	Admin    *AdminProfile    `json:"admin,omitempty"`
}

func NewUserVariant(p *UserProfile) *Profile {
	return &Profile{Role: RoleUser, User: p}
}

func NewEmployerVariant(p *EmployerProfile) *Profile {
	return &Profile{Role: RoleEmployer, Employer: p}
}

func NewAdminVariant(p *AdminProfile) *Profile {
	return &Profile{Role: RoleAdmin, Admin: p}
}

// DisplayName returns the human label for whichever variant is set.
func (p *Profile) DisplayName() string {
	switch p.Role {
	case RoleUser:
		if p.User != nil {
			return p.User.FullName
		}
	case RoleEmployer:
		if p.Employer != nil {
			return p.Employer.CompanyName
		}
	case RoleAdmin:
		if p.Admin != nil {
			return p.Admin.FullName
		}
	}
	return ""
}
