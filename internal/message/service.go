// AngelaMos | 2026
// service.go

package message

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/jobboard/internal/core"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Send(
	ctx context.Context,
	senderID string,
	req SendRequest,
) (*Message, error) {
	if senderID == req.ReceiverID {
		return nil, fmt.Errorf(
			"send message: cannot message yourself: %w",
			core.ErrInvalidInput,
		)
	}

	m := &Message{
		ID:            uuid.New().String(),
		SenderID:      senderID,
		ReceiverID:    req.ReceiverID,
		ApplicationID: optional(req.ApplicationID),
		Subject:       req.Subject,
		Content:       req.Content,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Inbox(
	ctx context.Context,
	identityID string,
	page, pageSize int,
) ([]Message, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return s.repo.ListForIdentity(
		ctx,
		identityID,
		pageSize,
		(page-1)*pageSize,
	)
}

func (s *Service) MarkRead(
	ctx context.Context,
	receiverID, messageID string,
) error {
	return s.repo.MarkRead(ctx, messageID, receiverID)
}

func (s *Service) UnreadCount(
	ctx context.Context,
	identityID string,
) (int64, error) {
	return s.repo.UnreadCount(ctx, identityID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
