// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	repo     Repository
	resolver *identity.Resolver
	loader   *identity.Loader
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		resolver: identity.NewResolver(repo),
		loader:   identity.NewLoader(repo),
	}
}

// MyProfile resolves the caller's role and returns the matching profile
// variant. An identity with no profile row gets core.ErrNotFound.
func (s *Service) MyProfile(
	ctx context.Context,
	identityID string,
) (*identity.Profile, error) {
	role, err := s.resolver.Resolve(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	profile, err := s.loader.Load(ctx, identityID, role)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if profile == nil {
		return nil, fmt.Errorf("load profile: %w", core.ErrNotFound)
	}

	return profile, nil
}

func (s *Service) UpdateMyUserProfile(
	ctx context.Context,
	identityID string,
	req UpdateUserProfileRequest,
) (*identity.UserProfile, error) {
	p, err := s.repo.UserProfileByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	p.FullName = req.FullName
	p.Phone = optional(req.Phone)
	p.Location = optional(req.Location)
	p.Skills = req.Skills
	p.ExperienceYears = req.ExperienceYears
	p.ResumeURL = optional(req.ResumeURL)
	p.Bio = optional(req.Bio)

	if err := s.repo.UpdateUserProfile(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) UpdateMyEmployerProfile(
	ctx context.Context,
	identityID string,
	req UpdateEmployerProfileRequest,
) (*identity.EmployerProfile, error) {
	p, err := s.repo.EmployerProfileByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	p.CompanyName = req.CompanyName
	p.Phone = optional(req.Phone)
	p.Location = optional(req.Location)
	p.Industry = optional(req.Industry)
	p.CompanySize = optional(req.CompanySize)
	p.Website = optional(req.Website)
	p.Description = optional(req.Description)
	p.LogoURL = optional(req.LogoURL)

	if err := s.repo.UpdateEmployerProfile(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]identity.UserProfile, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize)
	offset := (page - 1) * pageSize

	return s.repo.ListUsers(ctx, params.Search, pageSize, offset)
}

func (s *Service) ListEmployers(
	ctx context.Context,
	params ListEmployersParams,
) ([]identity.EmployerProfile, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize)
	offset := (page - 1) * pageSize

	return s.repo.ListEmployers(
		ctx,
		params.Search,
		params.Approved,
		pageSize,
		offset,
	)
}

func (s *Service) SetUserActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	return s.repo.SetUserActive(ctx, id, active)
}

func (s *Service) SetEmployerActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	return s.repo.SetEmployerActive(ctx, id, active)
}

func (s *Service) SetEmployerApproved(
	ctx context.Context,
	id string,
	approved bool,
) error {
	return s.repo.SetEmployerApproved(ctx, id, approved)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
