package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/usecase"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
)

// VerifyController checks the emailed OTP against the staged code and
// returns a re-issued token with verified=true.
type VerifyController struct {
	UC *usecase.VerifyEmailUseCase
}

func NewVerifyController(uc *usecase.VerifyEmailUseCase) *VerifyController {
	return &VerifyController{UC: uc}
}

type verifyRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *VerifyController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		out, err := h.UC.Execute(ctx, usecase.VerifyEmailInput{UserID: claims.UserID, Code: req.Code})
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, auth.ErrCodeExpired):
				status = http.StatusGone
			case errors.Is(err, auth.ErrInvalidCode):
				status = http.StatusUnprocessableEntity
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": out.Token,
			"user":  toUserPayload(out.User),
		})
	}
}
