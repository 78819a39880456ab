package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/realtime"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/usecase"
)

// ReceiptController records delivered/read receipts reported by the
// receiving side and relays them to the sender's socket.
type ReceiptController struct {
	UC    *usecase.MarkReceiptUseCase
	Rooms *realtime.Router
}

func NewReceiptController(uc *usecase.MarkReceiptUseCase, rooms *realtime.Router) *ReceiptController {
	return &ReceiptController{UC: uc, Rooms: rooms}
}

type receiptRequest struct {
	MessageIDs []string `json:"message_ids" binding:"required"`
	State      string   `json:"state" binding:"required"`
}

func (h *ReceiptController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req receiptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		target, ok := parseReceiptState(req.State)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "state must be delivered or read"})
			return
		}

		conversationID := c.Param("chatId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		updated, err := h.UC.Execute(ctx, usecase.MarkReceiptInput{
			ConversationID: conversationID,
			UserID:         claims.UserID,
			MessageIDs:     req.MessageIDs,
			Target:         target,
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

		if updated > 0 {
			data, merr := json.Marshal(frame{
				Type:           "receipt",
				ConversationID: conversationID,
				MessageIDs:     req.MessageIDs,
				State:          target.String(),
			})
			if merr == nil {
				h.Rooms.Broadcast(conversationID, data, claims.UserID)
			}
		}

		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}
