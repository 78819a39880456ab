package controller

import (
	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
)

// frame is the websocket envelope spoken on the realtime endpoint. The same
// shape carries client commands (join, leave, message, receipt) and server
// fan-out (message, receipt).
type frame struct {
	Type           string        `json:"type"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Message        *chat.Message `json:"message,omitempty"`
	MessageIDs     []string      `json:"message_ids,omitempty"`
	State          string        `json:"state,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// parseReceiptState maps the wire state names receipts may carry. Only the
// receiver-reported states are accepted.
func parseReceiptState(s string) (chat.DeliveryState, bool) {
	switch s {
	case "delivered":
		return chat.StateDelivered, true
	case "read":
		return chat.StateRead, true
	default:
		return 0, false
	}
}
