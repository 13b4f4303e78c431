// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

// Repository is the storage surface for all three profile tables. It
// satisfies identity.ProfileSource and identity.ProfileWriter, so role
// resolution and registration run through the same queries the rest of
// the package uses.
type Repository interface {
	AdminProfileByID(
		ctx context.Context,
		id string,
	) (*identity.AdminProfile, error)
	EmployerProfileByID(
		ctx context.Context,
		id string,
	) (*identity.EmployerProfile, error)
	UserProfileByID(
		ctx context.Context,
		id string,
	) (*identity.UserProfile, error)

	CreateUserProfile(ctx context.Context, p *identity.UserProfile) error
	CreateEmployerProfile(
		ctx context.Context,
		p *identity.EmployerProfile,
	) error

	UpdateUserProfile(ctx context.Context, p *identity.UserProfile) error
	UpdateEmployerProfile(
		ctx context.Context,
		p *identity.EmployerProfile,
	) error

	ListUsers(
		ctx context.Context,
		search string,
		limit, offset int,
	) ([]identity.UserProfile, int64, error)
	ListEmployers(
		ctx context.Context,
		search string,
		approved *bool,
		limit, offset int,
	) ([]identity.EmployerProfile, int64, error)

	SetUserActive(ctx context.Context, id string, active bool) error
	SetEmployerActive(ctx context.Context, id string, active bool) error
	SetEmployerApproved(ctx context.Context, id string, approved bool) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userProfileColumns = `
	id, email, full_name, phone, location, skills, experience_years,
	resume_url, bio, is_active, created_at, updated_at`

const employerProfileColumns = `
	id, email, company_name, phone, location, industry, company_size,
	website, description, logo_url, is_approved, is_active,
	created_at, updated_at`

func (r *repository) AdminProfileByID(
	ctx context.Context,
	id string,
) (*identity.AdminProfile, error) {
	query := `
		SELECT id, email, full_name, is_active, created_at
		FROM admin_profiles
		WHERE id = $1`

	var p identity.AdminProfile
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find admin profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find admin profile: %w", err)
	}

	return &p, nil
}

func (r *repository) EmployerProfileByID(
	ctx context.Context,
	id string,
) (*identity.EmployerProfile, error) {
	query := `
		SELECT ` + employerProfileColumns + `
		FROM employer_profiles
		WHERE id = $1`

	var p identity.EmployerProfile
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find employer profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find employer profile: %w", err)
	}

	return &p, nil
}

func (r *repository) UserProfileByID(
	ctx context.Context,
	id string,
) (*identity.UserProfile, error) {
	query := `
		SELECT ` + userProfileColumns + `
		FROM user_profiles
		WHERE id = $1`

	var p identity.UserProfile
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find user profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user profile: %w", err)
	}

	return &p, nil
}

func (r *repository) CreateUserProfile(
	ctx context.Context,
	p *identity.UserProfile,
) error {
	query := `
		INSERT INTO user_profiles (
			id, email, full_name, phone, location, skills,
			experience_years, resume_url, bio, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Email,
		p.FullName,
		p.Phone,
		p.Location,
		p.Skills,
		p.ExperienceYears,
		p.ResumeURL,
		p.Bio,
		p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user profile: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user profile: %w", err)
	}

	return nil
}

func (r *repository) CreateEmployerProfile(
	ctx context.Context,
	p *identity.EmployerProfile,
) error {
	query := `
		INSERT INTO employer_profiles (
			id, email, company_name, phone, location, industry,
			company_size, website, description, logo_url,
			is_approved, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Email,
		p.CompanyName,
		p.Phone,
		p.Location,
		p.Industry,
		p.CompanySize,
		p.Website,
		p.Description,
		p.LogoURL,
		p.IsApproved,
		p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf(
				"create employer profile: %w",
				core.ErrDuplicateKey,
			)
		}
		return fmt.Errorf("create employer profile: %w", err)
	}

	return nil
}

func (r *repository) UpdateUserProfile(
	ctx context.Context,
	p *identity.UserProfile,
) error {
	query := `
		UPDATE user_profiles
		SET full_name = $2, phone = $3, location = $4, skills = $5,
			experience_years = $6, resume_url = $7, bio = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.FullName,
		p.Phone,
		p.Location,
		p.Skills,
		p.ExperienceYears,
		p.ResumeURL,
		p.Bio,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}

	return nil
}

func (r *repository) UpdateEmployerProfile(
	ctx context.Context,
	p *identity.EmployerProfile,
) error {
	query := `
		UPDATE employer_profiles
		SET company_name = $2, phone = $3, location = $4, industry = $5,
			company_size = $6, website = $7, description = $8,
			logo_url = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.CompanyName,
		p.Phone,
		p.Location,
		p.Industry,
		p.CompanySize,
		p.Website,
		p.Description,
		p.LogoURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update employer profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update employer profile: %w", err)
	}

	return nil
}

func (r *repository) ListUsers(
	ctx context.Context,
	search string,
	limit, offset int,
) ([]identity.UserProfile, int64, error) {
	pattern := "%" + escapeLike(search) + "%"

	countQuery := `
		SELECT COUNT(*)
		FROM user_profiles
		WHERE ($1 = '' OR full_name ILIKE $2 OR email ILIKE $2)`

	var total int64
	if err := r.db.GetContext(
		ctx, &total, countQuery, search, pattern,
	); err != nil {
		return nil, 0, fmt.Errorf("count user profiles: %w", err)
	}

	query := `
		SELECT ` + userProfileColumns + `
		FROM user_profiles
		WHERE ($1 = '' OR full_name ILIKE $2 OR email ILIKE $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	var profiles []identity.UserProfile
	err := r.db.SelectContext(
		ctx, &profiles, query, search, pattern, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list user profiles: %w", err)
	}

	return profiles, total, nil
}

func (r *repository) ListEmployers(
	ctx context.Context,
	search string,
	approved *bool,
	limit, offset int,
) ([]identity.EmployerProfile, int64, error) {
	pattern := "%" + escapeLike(search) + "%"

	countQuery := `
		SELECT COUNT(*)
		FROM employer_profiles
		WHERE ($1 = '' OR company_name ILIKE $2 OR email ILIKE $2)
			AND ($3::boolean IS NULL OR is_approved = $3)`

	var total int64
	if err := r.db.GetContext(
		ctx, &total, countQuery, search, pattern, approved,
	); err != nil {
		return nil, 0, fmt.Errorf("count employer profiles: %w", err)
	}

	query := `
		SELECT ` + employerProfileColumns + `
		FROM employer_profiles
		WHERE ($1 = '' OR company_name ILIKE $2 OR email ILIKE $2)
			AND ($3::boolean IS NULL OR is_approved = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	var profiles []identity.EmployerProfile
	err := r.db.SelectContext(
		ctx, &profiles, query, search, pattern, approved, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list employer profiles: %w", err)
	}

	return profiles, total, nil
}

func (r *repository) SetUserActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	query := `
		UPDATE user_profiles
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "set user active", query, id, active)
}

func (r *repository) SetEmployerActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	query := `
		UPDATE employer_profiles
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "set employer active", query, id, active)
}

func (r *repository) SetEmployerApproved(
	ctx context.Context,
	id string,
	approved bool,
) error {
	query := `
		UPDATE employer_profiles
		SET is_approved = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execExpectingRow(ctx, "set employer approved", query, id, approved)
}

func (r *repository) execExpectingRow(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
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

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
