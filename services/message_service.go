//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"chat-server/domain"
	"chat-server/errors"
	"chat-server/moderation"
	"chat-server/repositories"
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IMessageService interface {
	Send(ctx context.Context, senderID, roomID, content string) (domain.Message, domain.Room, error)
	FetchHistory(ctx context.Context, roomID string) ([]domain.Message, error)
}

type MessageService struct {
	log              *slog.Logger
	rooms            repositories.IRoomRepository
	messages         repositories.IMessageRepository
	moderator        *moderation.Moderator
	maxContentLength int
	newID            func() string
}

// NewMessageService builds the message pipeline. A nil moderator stores content as sent.
func NewMessageService(
	log *slog.Logger,
	rooms repositories.IRoomRepository,
	messages repositories.IMessageRepository,
	moderator *moderation.Moderator,
	maxContentLength int,
) *MessageService {
	return &MessageService{
		log:              log,
		rooms:            rooms,
		messages:         messages,
		moderator:        moderator,
		maxContentLength: maxContentLength,
		newID:            uuid.NewString,
	}
}

// Send authorizes, moderates and appends a message. The append is the commit point:
// once it succeeded the message is returned, whatever happens to the last message projection.
// The room is returned alongside so the caller knows who to broadcast to.
func (s *MessageService) Send(ctx context.Context, senderID, roomID, content string) (domain.Message, domain.Room, error) {
	if roomID == "" {
		return domain.Message{}, domain.Room{}, errors.Validation("invalid or missing room id")
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return domain.Message{}, domain.Room{}, errors.Validation("message content cannot be empty")
	}
	if s.maxContentLength > 0 && utf8.RuneCountInString(trimmed) > s.maxContentLength {
		return domain.Message{}, domain.Room{}, errors.Validation("message content exceeds %d characters", s.maxContentLength)
	}

	diskRoom, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return domain.Message{}, domain.Room{}, err
	}
	room := toRoom(diskRoom)
	if !room.HasMember(senderID) {
		return domain.Message{}, domain.Room{}, errors.ErrNotAMember
	}
	if err = ctx.Err(); err != nil {
		return domain.Message{}, domain.Room{}, err
	}

	censored, words := s.moderator.Censor(content)
	if len(words) > 0 {
		s.log.Debug("Message censored", "room_id", roomID, "user_id", senderID, "words", len(words))
	}

	stored, err := s.messages.AppendMessage(repositories.DiskMessage{
		ID:       s.newID(),
		RoomID:   roomID,
		SenderID: senderID,
		Content:  censored,
	})
	if err != nil {
		return domain.Message{}, domain.Room{}, err
	}
	message := toMessage(stored)

	last := message.Projection()
	if err = s.rooms.SetLastMessage(roomID, repositories.DiskLastMessage{
		Content:   last.Content,
		SenderID:  last.SenderID,
		Timestamp: last.Timestamp,
	}); err != nil {
		s.log.Warn("Last message projection not updated", "room_id", roomID, "message_id", message.ID, "error", err)
	}

	room.LastMessage = &last
	return message, room, nil
}

// FetchHistory replays the whole room, oldest message first.
func (s *MessageService) FetchHistory(ctx context.Context, roomID string) ([]domain.Message, error) {
	if roomID == "" {
		return nil, errors.Validation("invalid or missing room id")
	}
	if _, err := s.rooms.GetRoom(roomID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	messages, err := s.messages.ListMessages(roomID)
	if err != nil {
		return nil, err
	}
	return lo.Map(messages, func(m repositories.DiskMessage, _ int) domain.Message {
		return toMessage(m)
	}), nil
}
