package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/usecase"
)

// GoogleController exchanges a Google OAuth access token for a local
// session. The provider already verified the email, so the account skips
// the OTP flow.
type GoogleController struct {
	UC          *usecase.GoogleLoginUseCase
	UserInfoURL string
	HTTPClient  *http.Client
}

func NewGoogleController(uc *usecase.GoogleLoginUseCase, userInfoURL string) *GoogleController {
	return &GoogleController{
		UC:          uc,
		UserInfoURL: userInfoURL,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type googleRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	Role        string `json:"role"`
}

type googleProfile struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	VerifiedEmail bool   `json:"verified_email"`
}

func (h *GoogleController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req googleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		profile, err := h.fetchProfile(ctx, req.AccessToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not verify google token"})
			return
		}

		role := auth.ParseRole(req.Role)
		out, err := h.UC.Execute(ctx, usecase.GoogleLoginInput{
			Email: profile.Email,
			Name:  profile.Name,
			Role:  role,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
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

func (h *GoogleController) fetchProfile(ctx context.Context, accessToken string) (*googleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo: status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.Email == "" || !profile.VerifiedEmail {
		return nil, fmt.Errorf("userinfo: email missing or unverified")
	}
	return &profile, nil
}
