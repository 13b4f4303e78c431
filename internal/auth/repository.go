// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type Repository interface {
	CreateIdentity(ctx context.Context, ident *Identity) error
	IdentityByEmail(ctx context.Context, email string) (*Identity, error)
	IdentityByID(ctx context.Context, id string) (*Identity, error)
	IncrementTokenVersion(ctx context.Context, identityID string) error

	CreateSession(ctx context.Context, sess *AuthSession) error
	SessionByHash(ctx context.Context, tokenHash string) (*AuthSession, error)
	MarkSessionUsed(ctx context.Context, id, replacedByID string) error
	RevokeSessionByID(ctx context.Context, id string) error
	RevokeSessionFamily(ctx context.Context, familyID string) error
	RevokeAllForIdentity(ctx context.Context, identityID string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateIdentity(
	ctx context.Context,
	ident *Identity,
) error {
	query := `
		INSERT INTO identities (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		ident.ID,
		ident.Email,
		ident.PasswordHash,
	).Scan(&ident.CreatedAt, &ident.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create identity: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create identity: %w", err)
	}

	return nil
}

func (r *repository) IdentityByEmail(
	ctx context.Context,
	email string,
) (*Identity, error) {
	query := `
		SELECT id, email, password_hash, token_version, created_at, updated_at
		FROM identities
		WHERE email = $1`

	var ident Identity
	err := r.db.GetContext(ctx, &ident, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find identity: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	return &ident, nil
}

func (r *repository) IdentityByID(
	ctx context.Context,
	id string,
) (*Identity, error) {
	query := `
		SELECT id, email, password_hash, token_version, created_at, updated_at
		FROM identities
		WHERE id = $1`

	var ident Identity
	err := r.db.GetContext(ctx, &ident, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find identity: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	return &ident, nil
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	identityID string,
) error {
	query := `
		UPDATE identities
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, identityID)
	if err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateSession(
	ctx context.Context,
	sess *AuthSession,
) error {
	query := `
		INSERT INTO auth_sessions (
			id, identity_id, token_hash, family_id, expires_at,
			user_agent, ip_address
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &sess.CreatedAt, query,
		sess.ID,
		sess.IdentityID,
		sess.TokenHash,
		sess.FamilyID,
		sess.ExpiresAt,
		sess.UserAgent,
		sess.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("create auth session: %w", err)
	}

	return nil
}

func (r *repository) SessionByHash(
	ctx context.Context,
	tokenHash string,
) (*AuthSession, error) {
	query := `
		SELECT
			id, identity_id, token_hash, family_id, expires_at, created_at,
			is_used, used_at, revoked_at, replaced_by_id, user_agent, ip_address
		FROM auth_sessions
		WHERE token_hash = $1`

	var sess AuthSession
	err := r.db.GetContext(ctx, &sess, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find auth session: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find auth session: %w", err)
	}

	return &sess, nil
}

func (r *repository) MarkSessionUsed(
	ctx context.Context,
	id, replacedByID string,
) error {
	query := `
		UPDATE auth_sessions
		SET is_used = true, used_at = NOW(), replaced_by_id = $2
		WHERE id = $1 AND is_used = false`

	result, err := r.db.ExecContext(ctx, query, id, replacedByID)
	if err != nil {
		return fmt.Errorf("mark session as used: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark session as used: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark session as used: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) RevokeSessionByID(ctx context.Context, id string) error {
	query := `
		UPDATE auth_sessions
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("revoke auth session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke auth session: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("revoke auth session: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) RevokeSessionFamily(
	ctx context.Context,
	familyID string,
) error {
	query := `
		UPDATE auth_sessions
		SET revoked_at = NOW()
		WHERE family_id = $1 AND revoked_at IS NULL`

	_, err := r.db.ExecContext(ctx, query, familyID)
	if err != nil {
		return fmt.Errorf("revoke session family: %w", err)
	}

	return nil
}

func (r *repository) RevokeAllForIdentity(
	ctx context.Context,
	identityID string,
) error {
	query := `
		UPDATE auth_sessions
		SET revoked_at = NOW()
		WHERE identity_id = $1 AND revoked_at IS NULL`

	_, err := r.db.ExecContext(ctx, query, identityID)
	if err != nil {
		return fmt.Errorf("revoke all identity sessions: %w", err)
	}

	return nil
}

func (r *repository) DeleteExpiredSessions(
	ctx context.Context,
) (int64, error) {
	query := `
		DELETE FROM auth_sessions
		WHERE expires_at < $1`

	cutoff := time.Now().Add(-24 * time.Hour)

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	return rows, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
