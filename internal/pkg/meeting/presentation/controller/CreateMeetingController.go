package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
)

// CreateMeetingController issues a fresh video room for a tutoring session.
// Rooms are unguessable uuids; the media layer itself is external and only
// needs both parties to share the same room id.
type CreateMeetingController struct{}

func NewCreateMeetingController() *CreateMeetingController {
	return &CreateMeetingController{}
}

type createMeetingRequest struct {
	PeerID string `json:"peer_id" binding:"required"`
}

func (h *CreateMeetingController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req createMeetingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.PeerID == claims.UserID {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cannot start a meeting with yourself"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"room_id":    uuid.NewString(),
			"host_id":    claims.UserID,
			"peer_id":    req.PeerID,
			"created_at": time.Now().UTC(),
		})
	}
}
