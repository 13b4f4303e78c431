// AngelaMos | 2026
// repository.go

package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	Delete(ctx context.Context, id, userID string) error

	ListByUser(
		ctx context.Context,
		userID string,
		limit, offset int,
	) ([]Application, int64, error)
	ListForEmployer(
		ctx context.Context,
		employerID string,
		params ReceivedParams,
	) ([]Application, int64, error)

	SetStatusForEmployer(
		ctx context.Context,
		id, employerID string,
		status Status,
	) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, user_id, cover_letter, resume_url, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING applied_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID,
		a.JobID,
		a.UserID,
		a.CoverLetter,
		a.ResumeURL,
		a.Status,
	).Scan(&a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create application: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Application, error) {
	query := `
		SELECT
			id, job_id, user_id, cover_letter, resume_url, status,
			applied_at, updated_at
		FROM applications
		WHERE id = $1`

	var a Application
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find application: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}

	return &a, nil
}

func (r *repository) Delete(ctx context.Context, id, userID string) error {
	query := `
		DELETE FROM applications
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete application: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]Application, int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM applications WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	query := `
		SELECT
			a.id, a.job_id, a.user_id, a.cover_letter, a.resume_url,
			a.status, a.applied_at, a.updated_at,
			j.title AS job_title, e.company_name
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN employer_profiles e ON e.id = j.employer_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC
		LIMIT $2 OFFSET $3`

	var applications []Application
	err = r.db.SelectContext(ctx, &applications, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	return applications, total, nil
}

// ListForEmployer returns applications to the employer's own postings,
// optionally narrowed to one job or one pipeline stage.
func (r *repository) ListForEmployer(
	ctx context.Context,
	employerID string,
	params ReceivedParams,
) ([]Application, int64, error) {
	where := `
		WHERE j.employer_id = $1
			AND ($2 = '' OR a.job_id = $2::uuid)
			AND ($3 = '' OR a.status = $3)`

	countQuery := `
		SELECT COUNT(*)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id` + where

	var total int64
	err := r.db.GetContext(ctx, &total, countQuery,
		employerID, params.JobID, string(params.Status),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count received applications: %w", err)
	}

	query := `
		SELECT
			a.id, a.job_id, a.user_id, a.cover_letter, a.resume_url,
			a.status, a.applied_at, a.updated_at,
			j.title AS job_title, u.full_name AS applicant_name
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN user_profiles u ON u.id = a.user_id` + where + `
		ORDER BY a.applied_at DESC
		LIMIT $4 OFFSET $5`

	var applications []Application
	err = r.db.SelectContext(ctx, &applications, query,
		employerID, params.JobID, string(params.Status),
		params.PageSize, (params.Page-1)*params.PageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list received applications: %w", err)
	}

	return applications, total, nil
}

// SetStatusForEmployer updates the pipeline stage only when the
// application targets one of the employer's own postings; anything else
// reads as missing.
func (r *repository) SetStatusForEmployer(
	ctx context.Context,
	id, employerID string,
	status Status,
) error {
	query := `
		UPDATE applications a
		SET status = $3, updated_at = NOW()
		FROM jobs j
		WHERE a.id = $1 AND j.id = a.job_id AND j.employer_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, employerID, status)
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set application status: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
