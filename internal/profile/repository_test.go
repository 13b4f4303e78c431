// AngelaMos | 2026
// repository_test.go

package profile

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func userProfileRows(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "full_name", "phone", "location", "skills",
		"experience_years", "resume_url", "bio", "is_active",
		"created_at", "updated_at",
	}).AddRow(
		id, "seeker@example.com", "Sam Seeker", nil, nil,
		[]byte(`["go","sql"]`), 3, nil, nil, true, now, now,
	)
}

func TestUserProfileByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles")).
		WithArgs("id-1").
		WillReturnRows(userProfileRows("id-1"))

	p, err := repo.UserProfileByID(context.Background(), "id-1")

	require.NoError(t, err)
	assert.Equal(t, "Sam Seeker", p.FullName)
	assert.Equal(t, core.StringList{"go", "sql"}, p.Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserProfileByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.UserProfileByID(context.Background(), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Role resolution over the real repository must issue the three point
// queries in priority order and stop at the first hit.
func TestResolverProbesTablesInOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_profiles")).
		WithArgs("id-2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM employer_profiles")).
		WithArgs("id-2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles")).
		WithArgs("id-2").
		WillReturnRows(userProfileRows("id-2"))

	role, err := identity.NewResolver(repo).Resolve(
		context.Background(),
		"id-2",
	)

	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolverShortCircuitsOnAdmin(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_profiles")).
		WithArgs("id-3").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "full_name", "is_active", "created_at",
		}).AddRow("id-3", "root@example.com", "Root", true, now))

	role, err := identity.NewResolver(repo).Resolve(
		context.Background(),
		"id-3",
	)

	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, role)
	// employer and user tables must not have been probed
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserProfileDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_profiles")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.CreateUserProfile(context.Background(), &identity.UserProfile{
		ID:       "id-4",
		Email:    "dup@example.com",
		FullName: "Dup",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetEmployerApprovedMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE employer_profiles")).
		WithArgs("ghost", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetEmployerApproved(context.Background(), "ghost", true)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployersFiltersByApproval(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM employer_profiles")).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "company_name", "phone", "location",
			"industry", "company_size", "website", "description",
			"logo_url", "is_approved", "is_active",
			"created_at", "updated_at",
		}).AddRow(
			"id-5", "hr@acme.com", "Acme", nil, nil, nil, nil,
			nil, nil, nil, false, true, now, now,
		))

	approved := false
	employers, total, err := repo.ListEmployers(
		context.Background(),
		"",
		&approved,
		20,
		0,
	)

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, employers, 1)
	assert.False(t, employers[0].IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
