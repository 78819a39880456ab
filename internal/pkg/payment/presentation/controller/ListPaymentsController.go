package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
	payment "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/application/usecase"
)

// ListPaymentsController returns the caller's payment history.
type ListPaymentsController struct {
	UC *usecase.ListPaymentsUseCase
}

func NewListPaymentsController(uc *usecase.ListPaymentsUseCase) *ListPaymentsController {
	return &ListPaymentsController{UC: uc}
}

func (h *ListPaymentsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		payments, err := h.UC.Execute(ctx, usecase.ListPaymentsInput{UserID: claims.UserID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if payments == nil {
			payments = []payment.Payment{}
		}
		c.JSON(http.StatusOK, gin.H{"payments": payments})
	}
}
