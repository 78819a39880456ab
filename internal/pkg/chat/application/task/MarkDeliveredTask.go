package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	queueport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/port"
	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/usecase"
)

// MarkDeliveredTaskType names the queued job that records delivered
// receipts once a message has reached the receiver's socket.
const MarkDeliveredTaskType = "chat:mark_delivered"

// MarkDeliveredPayload is the job body for a delivered receipt batch.
type MarkDeliveredPayload struct {
	ConversationID string   `json:"conversation_id"`
	ReceiverID     string   `json:"receiver_id"`
	MessageIDs     []string `json:"message_ids"`
}

// MarkDeliveredHandler consumes queued delivered receipts. Transitions are
// monotonic in the store, so redelivered jobs are harmless.
type MarkDeliveredHandler struct {
	UC *usecase.MarkReceiptUseCase
}

func NewMarkDeliveredHandler(uc *usecase.MarkReceiptUseCase) *MarkDeliveredHandler {
	return &MarkDeliveredHandler{UC: uc}
}

func (h *MarkDeliveredHandler) Handle(ctx context.Context, t queueport.Task) error {
	var payload MarkDeliveredPayload
	if err := json.Unmarshal(t.Payload, &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", MarkDeliveredTaskType, err)
	}

	updated, err := h.UC.Execute(ctx, usecase.MarkReceiptInput{
		ConversationID: payload.ConversationID,
		UserID:         payload.ReceiverID,
		MessageIDs:     payload.MessageIDs,
		Target:         chat.StateDelivered,
	})
	if err != nil {
		return fmt.Errorf("mark delivered in %s: %w", payload.ConversationID, err)
	}
	slog.Debug("delivered receipts applied", "conversation_id", payload.ConversationID, "updated", updated)
	return nil
}
