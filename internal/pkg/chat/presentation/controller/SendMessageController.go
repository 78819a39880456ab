package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	queueport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/realtime"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/task"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/usecase"
)

// SendMessageController persists a message and fans it out. Persisting is
// synchronous so the caller gets the canonical id back; the delivered
// receipt is recorded through the queue when the receiver's socket takes
// the frame.
type SendMessageController struct {
	UC    *usecase.SendMessageUseCase
	Rooms *realtime.Router
	Q     queueport.Client
}

func NewSendMessageController(uc *usecase.SendMessageUseCase, rooms *realtime.Router, q queueport.Client) *SendMessageController {
	return &SendMessageController{UC: uc, Rooms: rooms, Q: q}
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
	Kind int16  `json:"kind"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ConversationID: c.Param("chatId"),
			SenderID:       claims.UserID,
			Body:           req.Body,
			Kind:           chat.MessageKind(req.Kind),
		})
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, chat.ErrConversationMissing):
				status = http.StatusNotFound
			case errors.Is(err, chat.ErrNotParticipant):
				status = http.StatusForbidden
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		fanOutMessage(ctx, h.Rooms, h.Q, msg)

		c.JSON(http.StatusCreated, msg)
	}
}

// fanOutMessage pushes the stored message to the conversation room and, if
// the receiver is connected, queues the delivered receipt on their behalf.
func fanOutMessage(ctx context.Context, rooms *realtime.Router, q queueport.Client, msg *chat.Message) {
	data, err := json.Marshal(frame{Type: "message", ConversationID: msg.ConversationID, Message: msg})
	if err != nil {
		return
	}
	rooms.Broadcast(msg.ConversationID, data, msg.SenderID)

	if !rooms.IsOnline(msg.ReceiverID) {
		return
	}
	payload, err := json.Marshal(task.MarkDeliveredPayload{
		ConversationID: msg.ConversationID,
		ReceiverID:     msg.ReceiverID,
		MessageIDs:     []string{msg.ID},
	})
	if err != nil {
		return
	}
	_, err = q.Enqueue(ctx, queueport.Task{Type: task.MarkDeliveredTaskType, Payload: payload},
		queueport.EnqueueOption{Queue: "chat", MaxRetry: 3})
	if err != nil {
		slog.Error("enqueue delivered receipt", "message_id", msg.ID, "error", err)
	}
}
