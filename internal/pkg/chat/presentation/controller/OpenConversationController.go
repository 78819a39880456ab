package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/usecase"
)

// OpenConversationController finds or creates the thread between the caller
// and a peer. Opening is idempotent; both participants land on the same row.
type OpenConversationController struct {
	UC *usecase.OpenConversationUseCase
}

func NewOpenConversationController(uc *usecase.OpenConversationUseCase) *OpenConversationController {
	return &OpenConversationController{UC: uc}
}

type openConversationRequest struct {
	PeerID string `json:"peer_id" binding:"required"`
}

func (h *OpenConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req openConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		conv, err := h.UC.Execute(ctx, usecase.OpenConversationInput{UserID: claims.UserID, PeerID: req.PeerID})
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, chat.ErrSelfConversation):
				status = http.StatusUnprocessableEntity
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, conv)
	}
}
