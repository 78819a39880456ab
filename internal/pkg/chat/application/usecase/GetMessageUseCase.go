package usecase

import (
	"context"
	"fmt"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/persistence/repository/port"
)

// GetMessageInput carries parameters to fetch messages of a conversation.
type GetMessageInput struct {
	ConversationID string
	UserID         string
	Limit          int
	Offset         int
}

// GetMessageUseCase fetches a page of messages, oldest first, after
// checking the caller is a participant.
type GetMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessageUseCase(repo repository.ChatRepository) *GetMessageUseCase {
	return &GetMessageUseCase{Repo: repo}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, in GetMessageInput) ([]chat.Message, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		if err == chat.ErrConversationMissing {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.UserID) {
		return nil, chat.ErrNotParticipant
	}

	msgs, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
