// AngelaMos | 2026
// repository.go

package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/jobboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	ListForIdentity(
		ctx context.Context,
		identityID string,
		limit, offset int,
	) ([]Message, int64, error)
	MarkRead(ctx context.Context, id, receiverID string) error
	UnreadCount(ctx context.Context, identityID string) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO messages (
			id, sender_id, receiver_id, application_id, subject, content
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &m.CreatedAt, query,
		m.ID,
		m.SenderID,
		m.ReceiverID,
		m.ApplicationID,
		m.Subject,
		m.Content,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create message: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

// ListForIdentity returns the combined sent and received stream, newest
// first.
func (r *repository) ListForIdentity(
	ctx context.Context,
	identityID string,
	limit, offset int,
) ([]Message, int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM messages
		WHERE sender_id = $1 OR receiver_id = $1`,
		identityID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	query := `
		SELECT
			id, sender_id, receiver_id, application_id, subject,
			content, is_read, created_at
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var messages []Message
	err = r.db.SelectContext(ctx, &messages, query, identityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}

	return messages, total, nil
}

// MarkRead flips the read flag, but only for the receiver; a sender
// cannot mark their own outgoing mail as read.
func (r *repository) MarkRead(
	ctx context.Context,
	id, receiverID string,
) error {
	query := `
		UPDATE messages
		SET is_read = true
		WHERE id = $1 AND receiver_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, receiverID)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark message read: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UnreadCount(
	ctx context.Context,
	identityID string,
) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM messages
		WHERE receiver_id = $1 AND is_read = false`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, identityID); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}

	return count, nil
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
