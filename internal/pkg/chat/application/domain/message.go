package chat

import (
	"errors"
	"strings"
	"time"
)

// MessageKind represents the type of message content
// 0=text, 1=image
type MessageKind int16

const (
	KindText  MessageKind = 0
	KindImage MessageKind = 1
)

// Message is a log entry in a conversation. ID is either a server-assigned
// uuid or, on the client before confirmation, a temp id with a "tmp_"
// prefix.
type Message struct {
	ID             string        `db:"id" json:"id"`
	ConversationID string        `db:"conversation_id" json:"conversation_id"`
	SenderID       string        `db:"sender_id" json:"sender_id"`
	ReceiverID     string        `db:"receiver_id" json:"receiver_id"`
	Body           string        `db:"body" json:"body"`
	Kind           MessageKind   `db:"kind" json:"kind"`
	Status         DeliveryState `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

// NewMessage validates and normalizes a message candidate.
func NewMessage(m Message) (*Message, error) {
	if m.ConversationID == "" || m.SenderID == "" || m.ReceiverID == "" {
		return nil, errors.New("conversation_id, sender_id and receiver_id are required")
	}
	if m.SenderID == m.ReceiverID {
		return nil, errors.New("sender and receiver must differ")
	}

	m.Body = strings.TrimSpace(m.Body)
	if m.Body == "" {
		return nil, errors.New("message body is required")
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.Status == StateSending {
		m.Status = StateSent
	}

	return &m, nil
}

// Before reports whether m sorts ahead of other in the conversation's total
// order: createdAt first, id as tie-break.
func (m Message) Before(other Message) bool {
	if !m.CreatedAt.Equal(other.CreatedAt) {
		return m.CreatedAt.Before(other.CreatedAt)
	}
	return m.ID < other.ID
}
