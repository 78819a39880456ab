package usecase

import (
	"context"
	"fmt"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsInput wraps the requesting user.
type ListConversationsInput struct {
	UserID string
}

// ListConversationsUseCase returns the user's conversations, most recently
// active first, each with its last-message snapshot.
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]chat.Conversation, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	convs, err := uc.Repo.ListConversations(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return convs, nil
}
