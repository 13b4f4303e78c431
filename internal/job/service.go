// AngelaMos | 2026
// service.go

package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

var (
	// ErrEmployerNotApproved blocks posting until an admin approves the
	// employer account.
	ErrEmployerNotApproved = errors.New("employer not approved")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	repo     Repository
	profiles identity.ProfileSource
}

func NewService(repo Repository, profiles identity.ProfileSource) *Service {
	return &Service{repo: repo, profiles: profiles}
}

func (s *Service) Search(
	ctx context.Context,
	params SearchParams,
) ([]Job, int64, error) {
	params.Page, params.PageSize = normalizePage(params.Page, params.PageSize)
	return s.repo.Search(ctx, params)
}

// GetVisible fetches a posting for the public surface. Anything not
// approved and active reads as missing, so drafts and rejected posts
// never leak through direct links.
func (s *Service) GetVisible(ctx context.Context, id string) (*Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !j.Visible() {
		return nil, fmt.Errorf("find job: %w", core.ErrNotFound)
	}

	return j, nil
}

// Create accepts a posting from an approved, active employer and queues
// it for moderation.
func (s *Service) Create(
	ctx context.Context,
	employerID string,
	req CreateJobRequest,
) (*Job, error) {
	emp, err := s.profiles.EmployerProfileByID(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("get employer: %w", err)
	}

	if !emp.IsApproved || !emp.IsActive {
		return nil, ErrEmployerNotApproved
	}

	if err := validateSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}

	j := &Job{
		ID:                 uuid.New().String(),
		EmployerID:         employerID,
		CategoryID:         optional(req.CategoryID),
		Title:              req.Title,
		Description:        req.Description,
		Requirements:       optional(req.Requirements),
		Location:           req.Location,
		JobType:            req.JobType,
		ExperienceRequired: req.ExperienceRequired,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		SalaryCurrency:     defaultCurrency(req.SalaryCurrency),
		SkillsRequired:     req.SkillsRequired,
		Status:             StatusPending,
		ExpiresAt:          req.ExpiresAt,
		IsActive:           true,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}

	return j, nil
}

// Update edits an owned posting. Every edit re-enters moderation.
func (s *Service) Update(
	ctx context.Context,
	employerID, jobID string,
	req UpdateJobRequest,
) (*Job, error) {
	if err := validateSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}

	j := &Job{
		ID:                 jobID,
		EmployerID:         employerID,
		CategoryID:         optional(req.CategoryID),
		Title:              req.Title,
		Description:        req.Description,
		Requirements:       optional(req.Requirements),
		Location:           req.Location,
		JobType:            req.JobType,
		ExperienceRequired: req.ExperienceRequired,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		SalaryCurrency:     defaultCurrency(req.SalaryCurrency),
		SkillsRequired:     req.SkillsRequired,
		ExpiresAt:          req.ExpiresAt,
		IsActive:           true,
	}

	if err := s.repo.Update(ctx, j); err != nil {
		return nil, err
	}

	return j, nil
}

func (s *Service) Delete(ctx context.Context, employerID, jobID string) error {
	return s.repo.Delete(ctx, jobID, employerID)
}

// Close lets an employer pull an owned posting without admin help.
func (s *Service) Close(ctx context.Context, employerID, jobID string) error {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	if j.EmployerID != employerID {
		return fmt.Errorf("close job: %w", core.ErrForbidden)
	}

	return s.repo.SetStatus(ctx, jobID, StatusClosed)
}

func (s *Service) ListMine(
	ctx context.Context,
	employerID string,
	page, pageSize int,
) ([]Job, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.repo.ListByEmployer(
		ctx,
		employerID,
		pageSize,
		(page-1)*pageSize,
	)
}

// ModerationQueue lists postings awaiting (or past) moderation, oldest
// first so the queue drains fairly.
func (s *Service) ModerationQueue(
	ctx context.Context,
	status Status,
	page, pageSize int,
) ([]Job, int64, error) {
	if !status.Valid() {
		return nil, 0, fmt.Errorf(
			"list jobs: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	page, pageSize = normalizePage(page, pageSize)
	return s.repo.ListByStatus(ctx, status, pageSize, (page-1)*pageSize)
}

func (s *Service) SetStatus(
	ctx context.Context,
	jobID string,
	status Status,
) error {
	if !status.Valid() {
		return fmt.Errorf(
			"set job status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	return s.repo.SetStatus(ctx, jobID, status)
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.Categories(ctx)
}

// Save bookmarks a visible posting for a job seeker.
func (s *Service) Save(ctx context.Context, userID, jobID string) error {
	if _, err := s.GetVisible(ctx, jobID); err != nil {
		return err
	}

	return s.repo.SaveJob(ctx, userID, jobID)
}

func (s *Service) Unsave(ctx context.Context, userID, jobID string) error {
	return s.repo.UnsaveJob(ctx, userID, jobID)
}

func (s *Service) ListSaved(
	ctx context.Context,
	userID string,
	page, pageSize int,
) ([]Job, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.repo.ListSaved(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *Service) ExpireOverdue(ctx context.Context) (int64, error) {
	return s.repo.ExpireOverdue(ctx)
}

func validateSalaryRange(minSalary, maxSalary *int64) error {
	if minSalary != nil && maxSalary != nil && *minSalary > *maxSalary {
		return fmt.Errorf(
			"salary_min exceeds salary_max: %w",
			core.ErrInvalidInput,
		)
	}
	return nil
}

func defaultCurrency(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
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
