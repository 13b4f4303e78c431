// AngelaMos | 2026
// repository_test.go

package application

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
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCreateDuplicateApplication(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applications")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &Application{
		ID:     "app-1",
		JobID:  "job-1",
		UserID: "user-1",
		Status: StatusPending,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserJoinsJobAndCompany(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN employer_profiles")).
		WithArgs("user-1", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "job_id", "user_id", "cover_letter", "resume_url",
			"status", "applied_at", "updated_at",
			"job_title", "company_name",
		}).AddRow(
			"app-2", "job-1", "user-1", nil, nil,
			"pending", now, now, "Go Engineer", "Acme",
		))

	applications, total, err := repo.ListByUser(
		context.Background(),
		"user-1",
		20,
		0,
	)

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, applications, 1)
	require.NotNil(t, applications[0].JobTitle)
	assert.Equal(t, "Go Engineer", *applications[0].JobTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusForEmployerScopesOwnership(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("j.employer_id = $2")).
		WithArgs("app-3", "intruder", StatusShortlisted).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetStatusForEmployer(
		context.Background(),
		"app-3",
		"intruder",
		StatusShortlisted,
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteScopedToApplicant(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM applications")).
		WithArgs("app-4", "someone-else").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "app-4", "someone-else")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
