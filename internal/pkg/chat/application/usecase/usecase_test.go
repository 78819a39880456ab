package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
)

// fakeChatRepo is an in-memory ChatRepository mirroring the SQL adapter's
// monotonic status semantics.
type fakeChatRepo struct {
	convs    map[string]*chat.Conversation
	messages []chat.Message
	nextID   int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{convs: make(map[string]*chat.Conversation)}
}

func (r *fakeChatRepo) OpenConversation(_ context.Context, c chat.Conversation) (*chat.Conversation, error) {
	for _, existing := range r.convs {
		if existing.ParticipantA == c.ParticipantA && existing.ParticipantB == c.ParticipantB {
			cp := *existing
			return &cp, nil
		}
	}
	r.nextID++
	c.ID = fmt.Sprintf("conv%d", r.nextID)
	c.CreatedAt = time.Now()
	r.convs[c.ID] = &c
	cp := c
	return &cp, nil
}

func (r *fakeChatRepo) GetConversation(_ context.Context, id string) (*chat.Conversation, error) {
	c, ok := r.convs[id]
	if !ok {
		return nil, chat.ErrConversationMissing
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChatRepo) ListConversations(_ context.Context, userID string) ([]chat.Conversation, error) {
	var out []chat.Conversation
	for _, c := range r.convs {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) SaveMessage(_ context.Context, m chat.Message) (*chat.Message, error) {
	r.nextID++
	m.ID = fmt.Sprintf("msg%d", r.nextID)
	m.Status = chat.StateSent
	m.CreatedAt = time.Now()
	r.messages = append(r.messages, m)
	return &m, nil
}

func (r *fakeChatRepo) GetMessagesByConversation(_ context.Context, conversationID string, _ int, _ int) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) AdvanceStatus(_ context.Context, conversationID string, receiverID string, messageIDs []string, target chat.DeliveryState) (int64, error) {
	wanted := make(map[string]bool, len(messageIDs))
	for _, id := range messageIDs {
		wanted[id] = true
	}
	var updated int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.ConversationID != conversationID || m.ReceiverID != receiverID || !wanted[m.ID] {
			continue
		}
		if m.Status >= chat.StateSent && m.Status < target {
			m.Status = target
			updated++
		}
	}
	return updated, nil
}

func openPair(t *testing.T, repo *fakeChatRepo) *chat.Conversation {
	t.Helper()
	conv, err := NewOpenConversationUseCase(repo).Execute(context.Background(),
		OpenConversationInput{UserID: "alice", PeerID: "bob"})
	require.NoError(t, err)
	return conv
}

func TestOpenConversationIsIdempotent(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewOpenConversationUseCase(repo)

	first, err := uc.Execute(context.Background(), OpenConversationInput{UserID: "alice", PeerID: "bob"})
	require.NoError(t, err)

	// Opening from the other side lands on the same row.
	second, err := uc.Execute(context.Background(), OpenConversationInput{UserID: "bob", PeerID: "alice"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestOpenConversationRejectsSelf(t *testing.T) {
	uc := NewOpenConversationUseCase(newFakeChatRepo())
	_, err := uc.Execute(context.Background(), OpenConversationInput{UserID: "alice", PeerID: "alice"})
	require.ErrorIs(t, err, chat.ErrSelfConversation)
}

func TestSendMessageDerivesReceiver(t *testing.T) {
	repo := newFakeChatRepo()
	conv := openPair(t, repo)
	uc := NewSendMessageUseCase(repo)

	msg, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "alice",
		Body:           "hello",
	})
	require.NoError(t, err)
	require.Equal(t, "bob", msg.ReceiverID)
	require.Equal(t, chat.StateSent, msg.Status)
	require.NotEmpty(t, msg.ID)
}

func TestSendMessageRejectsOutsider(t *testing.T) {
	repo := newFakeChatRepo()
	conv := openPair(t, repo)
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       "mallory",
		Body:           "hi",
	})
	require.ErrorIs(t, err, chat.ErrNotParticipant)
}

func TestGetMessagesChecksMembership(t *testing.T) {
	repo := newFakeChatRepo()
	conv := openPair(t, repo)
	send := NewSendMessageUseCase(repo)
	get := NewGetMessageUseCase(repo)

	_, err := send.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID, SenderID: "alice", Body: "hello",
	})
	require.NoError(t, err)

	msgs, err := get.Execute(context.Background(), GetMessageInput{
		ConversationID: conv.ID, UserID: "bob", Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = get.Execute(context.Background(), GetMessageInput{
		ConversationID: conv.ID, UserID: "mallory", Limit: 10,
	})
	require.ErrorIs(t, err, chat.ErrNotParticipant)
}

func TestMarkReceiptValidatesTarget(t *testing.T) {
	repo := newFakeChatRepo()
	conv := openPair(t, repo)
	uc := NewMarkReceiptUseCase(repo)

	_, err := uc.Execute(context.Background(), MarkReceiptInput{
		ConversationID: conv.ID, UserID: "bob",
		MessageIDs: []string{"m1"}, Target: chat.StateError,
	})
	require.Error(t, err)

	_, err = uc.Execute(context.Background(), MarkReceiptInput{
		ConversationID: conv.ID, UserID: "bob",
		MessageIDs: []string{"m1"}, Target: chat.StateSent,
	})
	require.Error(t, err)
}

func TestMarkReceiptAdvancesMonotonically(t *testing.T) {
	repo := newFakeChatRepo()
	conv := openPair(t, repo)
	send := NewSendMessageUseCase(repo)
	receipts := NewMarkReceiptUseCase(repo)

	msg, err := send.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID, SenderID: "alice", Body: "hello",
	})
	require.NoError(t, err)

	updated, err := receipts.Execute(context.Background(), MarkReceiptInput{
		ConversationID: conv.ID, UserID: "bob",
		MessageIDs: []string{msg.ID}, Target: chat.StateRead,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, updated)

	// A late delivered receipt is a no-op, not an error.
	updated, err = receipts.Execute(context.Background(), MarkReceiptInput{
		ConversationID: conv.ID, UserID: "bob",
		MessageIDs: []string{msg.ID}, Target: chat.StateDelivered,
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, updated)
}

func TestMarkReceiptOnlyTouchesOwnInbox(t *testing.T) {
	repo := newFakeChatRepo()
	conv := openPair(t, repo)
	send := NewSendMessageUseCase(repo)
	receipts := NewMarkReceiptUseCase(repo)

	msg, err := send.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID, SenderID: "alice", Body: "hello",
	})
	require.NoError(t, err)

	// The sender cannot acknowledge their own message.
	updated, err := receipts.Execute(context.Background(), MarkReceiptInput{
		ConversationID: conv.ID, UserID: "alice",
		MessageIDs: []string{msg.ID}, Target: chat.StateRead,
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, updated)
}

func TestListConversations(t *testing.T) {
	repo := newFakeChatRepo()
	openPair(t, repo)
	uc := NewListConversationsUseCase(repo)

	convs, err := uc.Execute(context.Background(), ListConversationsInput{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, convs, 1)

	convs, err = uc.Execute(context.Background(), ListConversationsInput{UserID: "mallory"})
	require.NoError(t, err)
	require.Empty(t, convs)
}
