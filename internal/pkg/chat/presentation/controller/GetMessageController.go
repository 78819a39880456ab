package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/usecase"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// GetMessageController returns a page of conversation history, oldest
// first.
type GetMessageController struct {
	UC *usecase.GetMessageUseCase
}

func NewGetMessageController(uc *usecase.GetMessageUseCase) *GetMessageController {
	return &GetMessageController{UC: uc}
}

func (h *GetMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 || limit > maxPageSize {
			limit = defaultPageSize
		}
		if offset < 0 {
			offset = 0
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		messages, err := h.UC.Execute(ctx, usecase.GetMessageInput{
			ConversationID: c.Param("chatId"),
			UserID:         claims.UserID,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, chat.ErrConversationMissing):
				status = http.StatusNotFound
			case errors.Is(err, chat.ErrNotParticipant):
				status = http.StatusForbidden
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		if messages == nil {
			messages = []chat.Message{}
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}
