package usecase

import (
	"context"
	"fmt"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/persistence/repository/port"
)

// OpenConversationInput names the two participants. Order does not matter.
type OpenConversationInput struct {
	UserID string
	PeerID string
}

// OpenConversationUseCase finds or creates the conversation for the pair.
type OpenConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewOpenConversationUseCase(repo repository.ChatRepository) *OpenConversationUseCase {
	return &OpenConversationUseCase{Repo: repo}
}

func (uc *OpenConversationUseCase) Execute(ctx context.Context, in OpenConversationInput) (*chat.Conversation, error) {
	conv, err := chat.NewConversation(in.UserID, in.PeerID)
	if err != nil {
		return nil, err
	}
	opened, err := uc.Repo.OpenConversation(ctx, *conv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return opened, nil
}
