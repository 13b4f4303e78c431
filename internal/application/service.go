// AngelaMos | 2026
// service.go

package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/job"
)

var (
	// ErrAlreadyApplied covers the one-application-per-job rule.
	ErrAlreadyApplied = errors.New("already applied to this job")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// JobSource is the slice of the job store that applications need.
type JobSource interface {
	GetByID(ctx context.Context, id string) (*job.Job, error)
}

type Service struct {
	repo Repository
	jobs JobSource
}

func NewService(repo Repository, jobs JobSource) *Service {
	return &Service{repo: repo, jobs: jobs}
}

// Apply submits an application to a visible posting. A posting that is
// pending, rejected, closed, or expired cannot be applied to.
func (s *Service) Apply(
	ctx context.Context,
	userID string,
	req ApplyRequest,
) (*Application, error) {
	j, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if !j.Visible() {
		return nil, fmt.Errorf("apply: %w", core.ErrNotFound)
	}

	a := &Application{
		ID:          uuid.New().String(),
		JobID:       req.JobID,
		UserID:      userID,
		CoverLetter: optional(req.CoverLetter),
		ResumeURL:   optional(req.ResumeURL),
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	return a, nil
}

func (s *Service) Mine(
	ctx context.Context,
	userID string,
	page, pageSize int,
) ([]Application, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.repo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *Service) Received(
	ctx context.Context,
	employerID string,
	params ReceivedParams,
) ([]Application, int64, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, 0, fmt.Errorf(
			"list received: invalid status %q: %w",
			params.Status,
			core.ErrInvalidInput,
		)
	}

	params.Page, params.PageSize = normalizePage(params.Page, params.PageSize)
	return s.repo.ListForEmployer(ctx, employerID, params)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	employerID, applicationID string,
	status Status,
) error {
	if !status.Valid() {
		return fmt.Errorf(
			"update status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	return s.repo.SetStatusForEmployer(ctx, applicationID, employerID, status)
}

func (s *Service) Withdraw(
	ctx context.Context,
	userID, applicationID string,
) error {
	return s.repo.Delete(ctx, applicationID, userID)
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
