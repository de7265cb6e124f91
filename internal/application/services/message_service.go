package services

import (
	"context"
	"strings"
	"time"

	"github.com/classpulse/backend/internal/application/loaders"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	apperrors "github.com/classpulse/backend/pkg/errors"
)

const messageProjection = entities.ProjectName | entities.ProjectEmail

// SendMessageInput carries the fields of a direct message
type SendMessageInput struct {
	FromID string
	ToID   string
	Text   string
}

// MessageService handles direct messages between users
type MessageService struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
	now      func() time.Time
}

// NewMessageService creates a new message service
func NewMessageService(messages repositories.MessageRepository, users repositories.UserRepository) *MessageService {
	return &MessageService{messages: messages, users: users, now: time.Now}
}

// Send stores an unread message. Neither party is checked for existence.
func (s *MessageService) Send(ctx context.Context, in SendMessageInput) (*entities.Message, error) {
	if strings.TrimSpace(in.FromID) == "" || strings.TrimSpace(in.ToID) == "" || strings.TrimSpace(in.Text) == "" {
		return nil, apperrors.NewValidationError("Missing fields")
	}

	message := &entities.Message{
		FromID: in.FromID,
		ToID:   in.ToID,
		Text:   in.Text,
		Date:   s.now().UTC(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListForUser returns the conversation history of a user, oldest first.
func (s *MessageService) ListForUser(ctx context.Context, userID string) ([]*entities.MessageEntry, error) {
	loader := loaders.NewUserLoader(s.users)
	type pending struct {
		message  *entities.Message
		from, to userRef
	}

	var queued []pending
	for message, err := range s.messages.ListForUser(ctx, userID, repositories.SortAscending) {
		if err != nil {
			return nil, err
		}
		queued = append(queued, pending{
			message: message,
			from:    queueUser(ctx, loader, message.FromID),
			to:      queueUser(ctx, loader, message.ToID),
		})
	}

	entries := make([]*entities.MessageEntry, 0, len(queued))
	for _, p := range queued {
		from, err := p.from.resolve(messageProjection)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to expand message senders", err)
		}
		to, err := p.to.resolve(messageProjection)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to expand message recipients", err)
		}
		entries = append(entries, &entities.MessageEntry{
			ID:   p.message.ID,
			From: from,
			To:   to,
			Text: p.message.Text,
			Date: p.message.Date,
			Read: p.message.Read,
		})
	}
	return entries, nil
}
