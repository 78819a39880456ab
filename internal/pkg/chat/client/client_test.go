package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/storage/adapter"
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/session"
)

// apiStub fakes the backend surface the coordinator talks to.
type apiStub struct {
	mu       sync.Mutex
	mux      *http.ServeMux
	failSend bool
	saved    []chat.Message
	receipts []map[string]any
	history  []chat.Message
	nextID   int
}

func newAPIStub(t *testing.T) (*apiStub, *httptest.Server) {
	t.Helper()
	s := &apiStub{mux: http.NewServeMux()}

	s.mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"token": testJWT(t),
			"user": map[string]any{
				"id": "alice", "name": "Alice", "email": "alice@example.com",
				"role": "STUDENT", "verified": true, "status": "active",
			},
		})
	})

	s.mux.HandleFunc("POST /api/v1/chat", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, chat.Conversation{
			ID: "conv-1", ParticipantA: "alice", ParticipantB: "bob", CreatedAt: time.Now(),
		})
	})

	s.mux.HandleFunc("POST /api/v1/chat/conv-1", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.failSend {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "store unavailable"})
			return
		}
		var req struct {
			Body string `json:"body"`
			Kind int16  `json:"kind"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		s.nextID++
		msg := chat.Message{
			ID:             fmt.Sprintf("srv-%d", s.nextID),
			ConversationID: "conv-1",
			SenderID:       "alice",
			ReceiverID:     "bob",
			Body:           req.Body,
			Kind:           chat.MessageKind(req.Kind),
			Status:         chat.StateSent,
			CreatedAt:      time.Now(),
		}
		s.saved = append(s.saved, msg)
		writeJSON(w, http.StatusCreated, msg)
	})

	s.mux.HandleFunc("GET /api/v1/chat/conv-1/messages", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"messages": s.history})
	})

	s.mux.HandleFunc("POST /api/v1/chat/conv-1/receipts", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		s.mu.Lock()
		s.receipts = append(s.receipts, req)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"updated": 1})
	})

	srv := httptest.NewServer(s.mux)
	t.Cleanup(srv.Close)
	return s, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// testJWT is a structurally valid unsigned-verification token; the client
// only checks well-formedness, never the signature.
func testJWT(t *testing.T) string {
	t.Helper()
	return "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJ1c2VyX2lkIjoiYWxpY2UifQ." +
		"c2lnbmF0dXJl"
}

func loggedInClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	creds := session.NewStore(adapter.NewMemoryStorage())
	c := NewClient(srv.URL, creds)
	require.NoError(t, c.Login(context.Background(), "alice@example.com", "password123"))
	return c
}

func TestLoginStoresSession(t *testing.T) {
	_, srv := newAPIStub(t)
	c := loggedInClient(t, srv)

	sess := c.creds.GetSession()
	require.NotNil(t, sess)
	require.Equal(t, "alice", sess.UserID)
	require.Equal(t, auth.RoleStudent, sess.Role)
	require.True(t, sess.Verified)
}

func TestSendConfirmsOptimisticEntry(t *testing.T) {
	stub, srv := newAPIStub(t)
	c := loggedInClient(t, srv)

	tl, err := c.OpenConversation(context.Background(), "bob")
	require.NoError(t, err)

	tempID, err := c.Send(context.Background(), tl.ConversationID, "hello bob", chat.KindText)
	require.NoError(t, err)

	// The temp id is gone; the server id took its place at the same spot.
	_, ok := tl.Get(tempID)
	require.False(t, ok)
	msgs := tl.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, chat.StateSent, msgs[0].Status)

	stub.mu.Lock()
	require.Len(t, stub.saved, 1)
	require.Equal(t, "hello bob", stub.saved[0].Body)
	stub.mu.Unlock()
}

func TestSendFailureKeepsEntryForRetry(t *testing.T) {
	stub, srv := newAPIStub(t)
	c := loggedInClient(t, srv)

	tl, err := c.OpenConversation(context.Background(), "bob")
	require.NoError(t, err)

	stub.mu.Lock()
	stub.failSend = true
	stub.mu.Unlock()

	tempID, err := c.Send(context.Background(), tl.ConversationID, "offline msg", chat.KindText)
	require.Error(t, err)
	require.NotEmpty(t, tempID)

	msg, ok := tl.Get(tempID)
	require.True(t, ok)
	require.Equal(t, chat.StateError, msg.Status)

	// The backend comes back; retry is the only path out of error.
	stub.mu.Lock()
	stub.failSend = false
	stub.mu.Unlock()

	require.NoError(t, c.Retry(context.Background(), tl.ConversationID, tempID))
	msgs := tl.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, chat.StateSent, msgs[0].Status)
}

func TestSyncIngestsAndReportsDelivered(t *testing.T) {
	stub, srv := newAPIStub(t)
	c := loggedInClient(t, srv)

	tl, err := c.OpenConversation(context.Background(), "bob")
	require.NoError(t, err)

	now := time.Now()
	stub.mu.Lock()
	stub.history = []chat.Message{
		{ID: "m1", ConversationID: "conv-1", SenderID: "bob", ReceiverID: "alice",
			Body: "hi", Status: chat.StateSent, CreatedAt: now},
		{ID: "m2", ConversationID: "conv-1", SenderID: "alice", ReceiverID: "bob",
			Body: "hey", Status: chat.StateSent, CreatedAt: now.Add(time.Second)},
	}
	stub.mu.Unlock()

	require.NoError(t, c.Sync(context.Background(), tl.ConversationID, 50, 0))
	require.Equal(t, 2, tl.Len())

	// Only the peer's message produces a delivered receipt.
	stub.mu.Lock()
	require.Len(t, stub.receipts, 1)
	require.Equal(t, "delivered", stub.receipts[0]["state"])
	require.Equal(t, []any{"m1"}, stub.receipts[0]["message_ids"])
	stub.mu.Unlock()

	// Syncing again is a no-op: nothing new, no duplicate receipts.
	require.NoError(t, c.Sync(context.Background(), tl.ConversationID, 50, 0))
	require.Equal(t, 2, tl.Len())
	stub.mu.Lock()
	require.Len(t, stub.receipts, 1)
	stub.mu.Unlock()
}

func TestMarkReadReportsReceipt(t *testing.T) {
	stub, srv := newAPIStub(t)
	c := loggedInClient(t, srv)

	tl, err := c.OpenConversation(context.Background(), "bob")
	require.NoError(t, err)
	require.True(t, tl.Ingest(chat.Message{
		ID: "m1", ConversationID: "conv-1", SenderID: "bob", ReceiverID: "alice",
		Body: "hi", Status: chat.StateDelivered, CreatedAt: time.Now(),
	}))

	require.NoError(t, c.MarkRead(context.Background(), tl.ConversationID, []string{"m1"}))

	msg, _ := tl.Get("m1")
	require.Equal(t, chat.StateRead, msg.Status)

	stub.mu.Lock()
	require.Len(t, stub.receipts, 1)
	require.Equal(t, "read", stub.receipts[0]["state"])
	stub.mu.Unlock()
}

func TestOperationsRequireSession(t *testing.T) {
	_, srv := newAPIStub(t)
	creds := session.NewStore(adapter.NewMemoryStorage())
	c := NewClient(srv.URL, creds)

	_, err := c.OpenConversation(context.Background(), "bob")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogoutClearsSessionEvenIfServerFails(t *testing.T) {
	_, srv := newAPIStub(t)
	c := loggedInClient(t, srv)

	// No logout route is registered on the stub, so the call 404s; the
	// local session must be cleared regardless.
	err := c.Logout(context.Background())
	require.Error(t, err)
	require.Nil(t, c.creds.GetSession())
}
