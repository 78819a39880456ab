package usecase

import (
	"context"
	"fmt"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Body           string
	Kind           chat.MessageKind
}

// SendMessageUseCase validates membership and persists a new message. The
// receiver is derived from the conversation, never trusted from the caller.
type SendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.ConversationID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("conversation_id and sender_id are required")
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		if err == chat.ErrConversationMissing {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.SenderID) {
		return nil, chat.ErrNotParticipant
	}

	msg, err := chat.NewMessage(chat.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		ReceiverID:     conv.Peer(in.SenderID),
		Body:           in.Body,
		Kind:           in.Kind,
	})
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return saved, nil
}
