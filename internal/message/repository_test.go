// AngelaMos | 2026
// repository_test.go

package message

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

func TestMarkReadRequiresReceiver(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("receiver_id = $2")).
		WithArgs("msg-1", "sender-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), "msg-1", "sender-id")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForIdentityCombinesSentAndReceived(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("ident-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("sender_id = $1 OR receiver_id = $1")).
		WithArgs("ident-1", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "sender_id", "receiver_id", "application_id",
			"subject", "content", "is_read", "created_at",
		}).
			AddRow("msg-2", "ident-1", "ident-2", nil,
				"Re: offer", "Sounds good", false, now).
			AddRow("msg-3", "ident-2", "ident-1", nil,
				"Offer", "We would like to proceed", true, now))

	messages, total, err := repo.ListForIdentity(
		context.Background(),
		"ident-1",
		20,
		0,
	)

	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, messages, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnreadCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("is_read = false")).
		WithArgs("ident-3").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.UnreadCount(context.Background(), "ident-3")

	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
