package usecase

import (
	"context"
	"fmt"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/persistence/repository/port"
)

// MarkReceiptInput records delivered/read receipts from the receiving side.
type MarkReceiptInput struct {
	ConversationID string
	UserID         string // the receiver reporting the receipt
	MessageIDs     []string
	Target         chat.DeliveryState
}

// MarkReceiptUseCase applies monotonic delivery-state transitions. Receipts
// for states outside delivered/read are rejected; downgrades are silently
// skipped by the repository.
type MarkReceiptUseCase struct {
	Repo repository.ChatRepository
}

func NewMarkReceiptUseCase(repo repository.ChatRepository) *MarkReceiptUseCase {
	return &MarkReceiptUseCase{Repo: repo}
}

func (uc *MarkReceiptUseCase) Execute(ctx context.Context, in MarkReceiptInput) (int64, error) {
	if in.ConversationID == "" || in.UserID == "" {
		return 0, fmt.Errorf("conversation_id and user_id are required")
	}
	if in.Target != chat.StateDelivered && in.Target != chat.StateRead {
		return 0, fmt.Errorf("receipt state must be delivered or read")
	}
	if len(in.MessageIDs) == 0 {
		return 0, nil
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		if err == chat.ErrConversationMissing {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.UserID) {
		return 0, chat.ErrNotParticipant
	}

	n, err := uc.Repo.AdvanceStatus(ctx, in.ConversationID, in.UserID, in.MessageIDs, in.Target)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return n, nil
}
