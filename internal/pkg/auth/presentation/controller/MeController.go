package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
)

// MeController returns the current account from the database rather than
// echoing the token claims, so a status flip is visible on the next call.
type MeController struct {
	Repo repository.UserRepository
}

func NewMeController(repo repository.UserRepository) *MeController {
	return &MeController{Repo: repo}
}

func (h *MeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		user, err := h.Repo.GetUserByID(ctx, claims.UserID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": toUserPayload(*user)})
	}
}
