package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	queueport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/port"
)

// SendVerificationTaskType names the queued job that emails a signup OTP.
const SendVerificationTaskType = "auth:send_verification"

// SendVerificationPayload is the job body for a verification email.
type SendVerificationPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Code   string `json:"code"`
}

// Mailer delivers a verification code to an address.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, name, code string) error
}

// LogMailer stands in when no SMTP provider is configured; it records the
// send instead of performing it. Useful in development and tests.
type LogMailer struct{}

func (LogMailer) SendVerificationCode(_ context.Context, email, name, code string) error {
	slog.Info("verification code issued", "email", email, "name", name, "code", code)
	return nil
}

// SendVerificationHandler consumes queued verification jobs.
type SendVerificationHandler struct {
	Mailer Mailer
}

func NewSendVerificationHandler(mailer Mailer) *SendVerificationHandler {
	return &SendVerificationHandler{Mailer: mailer}
}

func (h *SendVerificationHandler) Handle(ctx context.Context, t queueport.Task) error {
	var payload SendVerificationPayload
	if err := json.Unmarshal(t.Payload, &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", SendVerificationTaskType, err)
	}
	if err := h.Mailer.SendVerificationCode(ctx, payload.Email, payload.Name, payload.Code); err != nil {
		return fmt.Errorf("send verification to %s: %w", payload.Email, err)
	}
	slog.Info("verification email sent", "user_id", payload.UserID)
	return nil
}
