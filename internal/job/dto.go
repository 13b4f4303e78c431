// AngelaMos | 2026
// dto.go

package job

import (
	"time"
)

type CreateJobRequest struct {
	Title              string     `json:"title"               validate:"required,min=3,max=200"`
	Description        string     `json:"description"         validate:"required,min=10,max=10000"`
	Requirements       string     `json:"requirements"        validate:"omitempty,max=10000"`
	Location           string     `json:"location"            validate:"required,max=200"`
	CategoryID         string     `json:"category_id"         validate:"omitempty,uuid"`
	JobType            string     `json:"job_type"            validate:"required,oneof=full-time part-time contract internship remote"`
	ExperienceRequired int        `json:"experience_required" validate:"gte=0,lte=60"`
	SalaryMin          *int64     `json:"salary_min"          validate:"omitempty,gte=0"`
	SalaryMax          *int64     `json:"salary_max"          validate:"omitempty,gte=0"`
	SalaryCurrency     string     `json:"salary_currency"     validate:"omitempty,len=3"`
	SkillsRequired     []string   `json:"skills_required"     validate:"omitempty,max=50,dive,min=1,max=50"`
	ExpiresAt          *time.Time `json:"expires_at"`
}

type UpdateJobRequest = CreateJobRequest

type SearchParams struct {
	Keyword    string
	Location   string
	CategoryID string
	JobType    string
	Page       int
	PageSize   int
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected closed"`
}
