package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/usecase"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
)

// LogoutController revokes the presented token for the rest of its
// lifetime.
type LogoutController struct {
	UC *usecase.LogoutUseCase
}

func NewLogoutController(uc *usecase.LogoutUseCase) *LogoutController {
	return &LogoutController{UC: uc}
}

func (h *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var expires time.Time
		if claims.ExpiresAt != nil {
			expires = claims.ExpiresAt.Time
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := h.UC.Execute(ctx, usecase.LogoutInput{TokenID: claims.ID, ExpiresAt: expires}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
