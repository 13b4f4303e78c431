// AngelaMos | 2026
// dto.go

package application

type ApplyRequest struct {
	JobID       string `json:"job_id"       validate:"required,uuid"`
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=10000"`
	ResumeURL   string `json:"resume_url"   validate:"omitempty,url,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shortlisted interview offered accepted rejected"`
}

type ReceivedParams struct {
	JobID    string
	Status   Status
	Page     int
	PageSize int
}
