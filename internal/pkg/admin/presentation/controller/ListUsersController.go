package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/admin/application/usecase"
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
)

// ListUsersController pages through accounts for the admin dashboard.
type ListUsersController struct {
	UC *usecase.ListUsersUseCase
}

func NewListUsersController(uc *usecase.ListUsersUseCase) *ListUsersController {
	return &ListUsersController{UC: uc}
}

type accountPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountPayload(u auth.User) accountPayload {
	return accountPayload{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Verified:  u.Verified,
		Status:    u.Status.String(),
		CreatedAt: u.CreatedAt,
	}
}

func (h *ListUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		users, err := h.UC.Execute(ctx, usecase.ListUsersInput{Limit: limit, Offset: offset})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		payloads := make([]accountPayload, 0, len(users))
		for _, u := range users {
			payloads = append(payloads, toAccountPayload(u))
		}
		c.JSON(http.StatusOK, gin.H{"users": payloads})
	}
}
