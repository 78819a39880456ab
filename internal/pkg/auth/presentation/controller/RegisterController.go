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
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/task"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/usecase"
)

// RegisterController handles the signup endpoint (one controller per endpoint)
type RegisterController struct {
	UC *usecase.RegisterUseCase
	Q  queueport.Client
}

func NewRegisterController(uc *usecase.RegisterUseCase, q queueport.Client) *RegisterController {
	return &RegisterController{UC: uc, Q: q}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     auth.ParseRole(req.Role),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		out, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, auth.ErrEmailTaken):
				status = http.StatusConflict
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		// The verification email goes out asynchronously; signup never
		// waits on the mail pipeline.
		payload, err := json.Marshal(task.SendVerificationPayload{
			UserID: out.User.ID,
			Email:  out.User.Email,
			Name:   out.User.Name,
			Code:   out.OTP,
		})
		if err == nil {
			if _, qerr := h.Q.Enqueue(ctx, queueport.Task{Type: task.SendVerificationTaskType, Payload: payload},
				queueport.EnqueueOption{MaxRetry: 5}); qerr != nil {
				slog.Error("enqueue verification email", "user_id", out.User.ID, "error", qerr)
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"token": out.Token,
			"user":  toUserPayload(out.User),
		})
	}
}
