package repository

import (
	"context"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for the chat domain.
type ChatRepository interface {
	// OpenConversation inserts the normalized pair or returns the existing
	// row for it; the unordered pair is the uniqueness key.
	OpenConversation(ctx context.Context, c chat.Conversation) (*chat.Conversation, error)

	GetConversation(ctx context.Context, id string) (*chat.Conversation, error)

	// ListConversations returns every conversation the user participates
	// in, each carrying its last-message snapshot.
	ListConversations(ctx context.Context, userID string) ([]chat.Conversation, error)

	// SaveMessage persists the message and returns it with the
	// server-assigned id and timestamp.
	SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error)

	GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]chat.Message, error)

	// AdvanceStatus moves the given messages to target where that is an
	// upward transition; messages already at or past target are untouched.
	// Only messages addressed to receiverID are affected.
	AdvanceStatus(ctx context.Context, conversationID string, receiverID string, messageIDs []string, target chat.DeliveryState) (int64, error)
}
