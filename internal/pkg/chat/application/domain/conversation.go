package chat

import (
	"errors"
	"time"
)

// Domain-level errors for chat behaviors
var (
	ErrNotParticipant      = errors.New("chat: user is not a participant in the conversation")
	ErrSelfConversation    = errors.New("chat: a conversation needs two distinct participants")
	ErrConversationMissing = errors.New("chat: conversation not found")
)

// Conversation is a two-party thread. Participants are stored normalized
// (A < B lexicographically) so the unordered pair uniquely identifies the
// conversation.
type Conversation struct {
	ID           string    `db:"id" json:"id"`
	ParticipantA string    `db:"participant_a" json:"participant_a"`
	ParticipantB string    `db:"participant_b" json:"participant_b"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	LastMessage  *Message  `db:"-" json:"last_message,omitempty"`
}

// NewConversation normalizes the participant pair. Opening (a,b) and (b,a)
// produce identical records.
func NewConversation(a, b string) (*Conversation, error) {
	if a == "" || b == "" || a == b {
		return nil, ErrSelfConversation
	}
	if b < a {
		a, b = b, a
	}
	return &Conversation{ParticipantA: a, ParticipantB: b}, nil
}

// HasParticipant tells whether userID is part of this conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	if c == nil {
		return false
	}
	return userID == c.ParticipantA || userID == c.ParticipantB
}

// Peer returns the other participant, or "" when userID is not a member.
func (c *Conversation) Peer(userID string) string {
	switch userID {
	case c.ParticipantA:
		return c.ParticipantB
	case c.ParticipantB:
		return c.ParticipantA
	default:
		return ""
	}
}
