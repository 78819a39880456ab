package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/payment/application/usecase"
)

// RecordPaymentController records a settled charge for the caller.
type RecordPaymentController struct {
	UC *usecase.RecordPaymentUseCase
}

func NewRecordPaymentController(uc *usecase.RecordPaymentUseCase) *RecordPaymentController {
	return &RecordPaymentController{UC: uc}
}

type recordPaymentRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency"`
	Purpose  string `json:"purpose"`
}

func (h *RecordPaymentController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req recordPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a decimal string"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		stored, err := h.UC.Execute(ctx, usecase.RecordPaymentInput{
			UserID:   claims.UserID,
			Amount:   amount,
			Currency: req.Currency,
			Purpose:  req.Purpose,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, stored)
	}
}
