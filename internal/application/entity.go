// AngelaMos | 2026
// entity.go

package application

import (
	"time"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusOffered     Status = "offered"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShortlisted, StatusInterview,
		StatusOffered, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

type Application struct {
	ID          string    `db:"id"           json:"id"`
	JobID       string    `db:"job_id"       json:"job_id"`
	UserID      string    `db:"user_id"      json:"user_id"`
	CoverLetter *string   `db:"cover_letter" json:"cover_letter,omitempty"`
	ResumeURL   *string   `db:"resume_url"   json:"resume_url,omitempty"`
	Status      Status    `db:"status"       json:"status"`
	AppliedAt   time.Time `db:"applied_at"   json:"applied_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`

	// populated only by list queries that join jobs and profiles
	JobTitle      *string `db:"job_title"      json:"job_title,omitempty"`
	CompanyName   *string `db:"company_name"   json:"company_name,omitempty"`
	ApplicantName *string `db:"applicant_name" json:"applicant_name,omitempty"`
}
