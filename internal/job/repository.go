// AngelaMos | 2026
// repository.go

package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id, employerID string) error

	Search(ctx context.Context, params SearchParams) ([]Job, int64, error)
	ListByEmployer(
		ctx context.Context,
		employerID string,
		limit, offset int,
	) ([]Job, int64, error)
	ListByStatus(
		ctx context.Context,
		status Status,
		limit, offset int,
	) ([]Job, int64, error)
	SetStatus(ctx context.Context, id string, status Status) error
	ExpireOverdue(ctx context.Context) (int64, error)

	Categories(ctx context.Context) ([]Category, error)

	SaveJob(ctx context.Context, userID, jobID string) error
	UnsaveJob(ctx context.Context, userID, jobID string) error
	ListSaved(
		ctx context.Context,
		userID string,
		limit, offset int,
	) ([]Job, int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const jobColumns = `
	j.id, j.employer_id, j.category_id, j.title, j.description,
	j.requirements, j.location, j.job_type, j.experience_required,
	j.salary_min, j.salary_max, j.salary_currency, j.skills_required,
	j.status, j.expires_at, j.is_active, j.created_at, j.updated_at`

func (r *repository) Create(ctx context.Context, j *Job) error {
	query := `
		INSERT INTO jobs (
			id, employer_id, category_id, title, description,
			requirements, location, job_type, experience_required,
			salary_min, salary_max, salary_currency, skills_required,
			status, expires_at, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		j.ID,
		j.EmployerID,
		j.CategoryID,
		j.Title,
		j.Description,
		j.Requirements,
		j.Location,
		j.JobType,
		j.ExperienceRequired,
		j.SalaryMin,
		j.SalaryMax,
		j.SalaryCurrency,
		j.SkillsRequired,
		j.Status,
		j.ExpiresAt,
		j.IsActive,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create job: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("create job: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Job, error) {
	query := `
		SELECT ` + jobColumns + `, e.company_name
		FROM jobs j
		JOIN employer_profiles e ON e.id = j.employer_id
		WHERE j.id = $1`

	var j Job
	err := r.db.GetContext(ctx, &j, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}

	return &j, nil
}

// Update rewrites the editable fields and forces the posting back into
// the moderation queue.
func (r *repository) Update(ctx context.Context, j *Job) error {
	query := `
		UPDATE jobs
		SET category_id = $3, title = $4, description = $5,
			requirements = $6, location = $7, job_type = $8,
			experience_required = $9, salary_min = $10, salary_max = $11,
			salary_currency = $12, skills_required = $13,
			status = 'pending', expires_at = $14, updated_at = NOW()
		WHERE id = $1 AND employer_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &j.UpdatedAt, query,
		j.ID,
		j.EmployerID,
		j.CategoryID,
		j.Title,
		j.Description,
		j.Requirements,
		j.Location,
		j.JobType,
		j.ExperienceRequired,
		j.SalaryMin,
		j.SalaryMax,
		j.SalaryCurrency,
		j.SkillsRequired,
		j.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update job: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	j.Status = StatusPending
	return nil
}

func (r *repository) Delete(ctx context.Context, id, employerID string) error {
	query := `
		DELETE FROM jobs
		WHERE id = $1 AND employer_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, employerID)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete job: %w", core.ErrNotFound)
	}

	return nil
}

// Search returns approved, active postings only, newest first.
func (r *repository) Search(
	ctx context.Context,
	params SearchParams,
) ([]Job, int64, error) {
	keyword := "%" + escapeLike(params.Keyword) + "%"
	location := "%" + escapeLike(params.Location) + "%"

	where := `
		WHERE j.status = 'approved' AND j.is_active = true
			AND ($1 = '' OR j.title ILIKE $2 OR j.description ILIKE $2)
			AND ($3 = '' OR j.location ILIKE $4)
			AND ($5 = '' OR j.category_id = $5::uuid)
			AND ($6 = '' OR j.job_type = $6)`

	countQuery := `
		SELECT COUNT(*)
		FROM jobs j` + where

	var total int64
	err := r.db.GetContext(ctx, &total, countQuery,
		params.Keyword, keyword,
		params.Location, location,
		params.CategoryID,
		params.JobType,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `, e.company_name
		FROM jobs j
		JOIN employer_profiles e ON e.id = j.employer_id` + where + `
		ORDER BY j.created_at DESC
		LIMIT $7 OFFSET $8`

	var jobs []Job
	err = r.db.SelectContext(ctx, &jobs, query,
		params.Keyword, keyword,
		params.Location, location,
		params.CategoryID,
		params.JobType,
		params.PageSize,
		(params.Page-1)*params.PageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search jobs: %w", err)
	}

	return jobs, total, nil
}

func (r *repository) ListByEmployer(
	ctx context.Context,
	employerID string,
	limit, offset int,
) ([]Job, int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM jobs j WHERE j.employer_id = $1`,
		employerID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count employer jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `
		FROM jobs j
		WHERE j.employer_id = $1
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3`

	var jobs []Job
	err = r.db.SelectContext(ctx, &jobs, query, employerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list employer jobs: %w", err)
	}

	return jobs, total, nil
}

func (r *repository) ListByStatus(
	ctx context.Context,
	status Status,
	limit, offset int,
) ([]Job, int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM jobs j WHERE j.status = $1`,
		status,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs by status: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `, e.company_name
		FROM jobs j
		JOIN employer_profiles e ON e.id = j.employer_id
		WHERE j.status = $1
		ORDER BY j.created_at ASC
		LIMIT $2 OFFSET $3`

	var jobs []Job
	err = r.db.SelectContext(ctx, &jobs, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs by status: %w", err)
	}

	return jobs, total, nil
}

func (r *repository) SetStatus(
	ctx context.Context,
	id string,
	status Status,
) error {
	query := `
		UPDATE jobs
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set job status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set job status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set job status: %w", core.ErrNotFound)
	}

	return nil
}

// ExpireOverdue sweeps approved postings whose deadline passed.
func (r *repository) ExpireOverdue(ctx context.Context) (int64, error) {
	query := `
		UPDATE jobs
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'approved'
			AND expires_at IS NOT NULL
			AND expires_at < NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("expire jobs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire jobs: %w", err)
	}

	return rows, nil
}

func (r *repository) Categories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, created_at
		FROM job_categories
		ORDER BY name ASC`

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) SaveJob(ctx context.Context, userID, jobID string) error {
	query := `
		INSERT INTO saved_jobs (user_id, job_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, job_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, jobID); err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("save job: %w", core.ErrNotFound)
		}
		return fmt.Errorf("save job: %w", err)
	}

	return nil
}

func (r *repository) UnsaveJob(
	ctx context.Context,
	userID, jobID string,
) error {
	query := `
		DELETE FROM saved_jobs
		WHERE user_id = $1 AND job_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, jobID)
	if err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("unsave job: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListSaved(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]Job, int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count saved jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `, e.company_name
		FROM saved_jobs s
		JOIN jobs j ON j.id = s.job_id
		JOIN employer_profiles e ON e.id = j.employer_id
		WHERE s.user_id = $1
		ORDER BY s.saved_at DESC
		LIMIT $2 OFFSET $3`

	var jobs []Job
	err = r.db.SelectContext(ctx, &jobs, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list saved jobs: %w", err)
	}

	return jobs, total, nil
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
