// AngelaMos | 2026
// entity.go

package job

import (
	"time"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusClosed   Status = "closed"
	StatusExpired  Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved,
		StatusRejected, StatusClosed, StatusExpired:
		return true
	default:
		return false
	}
}

type Job struct {
	ID                 string          `db:"id"                  json:"id"`
	EmployerID         string          `db:"employer_id"         json:"employer_id"`
	CategoryID         *string         `db:"category_id"         json:"category_id,omitempty"`
	Title              string          `db:"title"               json:"title"`
	Description        string          `db:"description"         json:"description"`
	Requirements       *string         `db:"requirements"        json:"requirements,omitempty"`
	Location           string          `db:"location"            json:"location"`
	JobType            string          `db:"job_type"            json:"job_type"`
	ExperienceRequired int             `db:"experience_required" json:"experience_required"`
	SalaryMin          *int64          `db:"salary_min"          json:"salary_min,omitempty"`
	SalaryMax          *int64          `db:"salary_max"          json:"salary_max,omitempty"`
	SalaryCurrency     string          `db:"salary_currency"     json:"salary_currency"`
	SkillsRequired     core.StringList `db:"skills_required"     json:"skills_required,omitempty"`
	Status             Status          `db:"status"              json:"status"`
	ExpiresAt          *time.Time      `db:"expires_at"          json:"expires_at,omitempty"`
	IsActive           bool            `db:"is_active"           json:"is_active"`
	CreatedAt          time.Time       `db:"created_at"          json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"          json:"updated_at"`

	// populated only by queries that join employer_profiles
	CompanyName *string `db:"company_name" json:"company_name,omitempty"`
}

// Visible reports whether the posting belongs in public search results.
func (j *Job) Visible() bool {
	return j.Status == StatusApproved && j.IsActive
}

type Category struct {
	ID        string    `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type SavedJob struct {
	UserID  string    `db:"user_id"  json:"user_id"`
	JobID   string    `db:"job_id"   json:"job_id"`
	SavedAt time.Time `db:"saved_at" json:"saved_at"`
}
