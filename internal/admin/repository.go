// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type Overview struct {
	TotalUsers        int64 `json:"total_users"`
	TotalEmployers    int64 `json:"total_employers"`
	ApprovedEmployers int64 `json:"approved_employers"`
	TotalJobs         int64 `json:"total_jobs"`
	PendingJobs       int64 `json:"pending_jobs"`
	ActiveJobs        int64 `json:"active_jobs"`
	TotalApplications int64 `json:"total_applications"`
}

type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Overview(ctx context.Context) (*Overview, error) {
	var o Overview

	counts := []struct {
		dest  *int64
		query string
	}{
		{&o.TotalUsers,
			`SELECT COUNT(*) FROM user_profiles`},
		{&o.TotalEmployers,
			`SELECT COUNT(*) FROM employer_profiles`},
		{&o.ApprovedEmployers,
			`SELECT COUNT(*) FROM employer_profiles WHERE is_approved = true`},
		{&o.TotalJobs,
			`SELECT COUNT(*) FROM jobs`},
		{&o.PendingJobs,
			`SELECT COUNT(*) FROM jobs WHERE status = 'pending'`},
		{&o.ActiveJobs,
			`SELECT COUNT(*) FROM jobs
			WHERE status = 'approved' AND is_active = true`},
		{&o.TotalApplications,
			`SELECT COUNT(*) FROM applications`},
	}

	for _, c := range counts {
		if err := r.db.GetContext(ctx, c.dest, c.query); err != nil {
			return nil, fmt.Errorf("analytics overview: %w", err)
		}
	}

	return &o, nil
}
