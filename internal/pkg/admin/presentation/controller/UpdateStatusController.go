package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/admin/application/usecase"
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
)

// UpdateStatusController suspends or reinstates an account.
type UpdateStatusController struct {
	UC *usecase.UpdateStatusUseCase
}

func NewUpdateStatusController(uc *usecase.UpdateStatusUseCase) *UpdateStatusController {
	return &UpdateStatusController{UC: uc}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *UpdateStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		user, err := h.UC.Execute(ctx, usecase.UpdateStatusInput{
			ActorID: claims.UserID,
			UserID:  c.Param("id"),
			Status:  auth.ParseStatus(req.Status),
		})
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, auth.ErrUserNotFound):
				status = http.StatusNotFound
			case errors.Is(err, usecase.ErrSelfSuspension):
				status = http.StatusUnprocessableEntity
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": toAccountPayload(*user)})
	}
}
