// AngelaMos | 2026
// repository_test.go

package job

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func jobRows(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "employer_id", "category_id", "title", "description",
		"requirements", "location", "job_type", "experience_required",
		"salary_min", "salary_max", "salary_currency", "skills_required",
		"status", "expires_at", "is_active", "created_at", "updated_at",
		"company_name",
	}).AddRow(
		id, "emp-1", nil, "Go Engineer", "Build services", nil,
		"Berlin", "full-time", 3, int64(70000), int64(90000), "EUR",
		[]byte(`["go"]`), "approved", nil, true, now, now, "Acme",
	)
}

func TestSearchReturnsOnlyApprovedActive(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(
		regexp.QuoteMeta("j.status = 'approved' AND j.is_active = true"),
	).
		WillReturnRows(jobRows("job-1"))

	jobs, total, err := repo.Search(context.Background(), SearchParams{
		Keyword:  "go",
		Page:     1,
		PageSize: 20,
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Engineer", jobs[0].Title)
	require.NotNil(t, jobs[0].CompanyName)
	assert.Equal(t, "Acme", *jobs[0].CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs j")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateForcesPendingStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("status = 'pending'")).
		WillReturnRows(
			sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()),
		)

	j := &Job{
		ID:          "job-2",
		EmployerID:  "emp-1",
		Title:       "Updated title",
		Description: "Updated description",
		Location:    "Remote",
		JobType:     "remote",
	}

	err := repo.Update(context.Background(), j)

	require.NoError(t, err)
	assert.Equal(t, StatusPending, j.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE jobs")).
		WithArgs("ghost", StatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetStatus(context.Background(), "ghost", StatusApproved)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireOverdueSweepsApprovedPastDeadline(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET status = 'expired'")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.ExpireOverdue(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteScopedToOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM jobs")).
		WithArgs("job-3", "someone-else").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "job-3", "someone-else")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveJobIsIdempotent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, job_id) DO NOTHING")).
		WithArgs("user-1", "job-4").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveJob(context.Background(), "user-1", "job-4")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
