// AngelaMos | 2026
// dto.go

package profile

type UpdateUserProfileRequest struct {
	FullName        string   `json:"full_name"        validate:"required,min=1,max=100"`
	Phone           string   `json:"phone"            validate:"omitempty,max=30"`
	Location        string   `json:"location"         validate:"omitempty,max=200"`
	Skills          []string `json:"skills"           validate:"omitempty,max=50,dive,min=1,max=50"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0,lte=60"`
	ResumeURL       string   `json:"resume_url"       validate:"omitempty,url,max=500"`
	Bio             string   `json:"bio"              validate:"omitempty,max=2000"`
}

type UpdateEmployerProfileRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	Phone       string `json:"phone"        validate:"omitempty,max=30"`
	Location    string `json:"location"     validate:"omitempty,max=200"`
	Industry    string `json:"industry"     validate:"omitempty,max=100"`
	CompanySize string `json:"company_size" validate:"omitempty,max=50"`
	Website     string `json:"website"      validate:"omitempty,url,max=500"`
	Description string `json:"description"  validate:"omitempty,max=5000"`
	LogoURL     string `json:"logo_url"     validate:"omitempty,url,max=500"`
}

type ListUsersParams struct {
	Page     int
	PageSize int
	Search   string
}

type ListEmployersParams struct {
	Page     int
	PageSize int
	Search   string
	Approved *bool
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type SetApprovedRequest struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}
