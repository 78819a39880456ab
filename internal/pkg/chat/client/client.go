package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	chat "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/session"
)

// ErrNotAuthenticated is returned by operations that need a session when
// the credential store is empty.
var ErrNotAuthenticated = errors.New("chatclient: not authenticated")

// Client coordinates the credential store and per-conversation timelines
// against the backend API. All timeline mutations are synchronous; the
// network call is the only suspension point, and confirm/fail is applied
// once it completes.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   *session.Store

	mu        sync.Mutex
	timelines map[string]*Timeline
}

// NewClient constructs a coordinator for the API at baseURL.
func NewClient(baseURL string, creds *session.Store) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpc:     &http.Client{Timeout: 15 * time.Second},
		creds:     creds,
		timelines: make(map[string]*Timeline),
	}
}

// userPayload mirrors the API's user shape.
type userPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
}

type authPayload struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (c *Client) storeSession(p authPayload) error {
	return c.creds.SetSession(session.Session{
		UserID:   p.User.ID,
		Name:     p.User.Name,
		Email:    p.User.Email,
		Role:     auth.ParseRole(p.User.Role),
		Verified: p.User.Verified,
		Status:   auth.ParseStatus(p.User.Status),
		Token:    p.Token,
	})
}

// Login authenticates with email/password and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out authPayload
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": email, "password": password,
	}, &out, false)
	if err != nil {
		return err
	}
	return c.storeSession(out)
}

// Register signs up a new account and persists the (unverified) session.
func (c *Client) Register(ctx context.Context, name, email, password, role string) error {
	var out authPayload
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": name, "email": email, "password": password, "role": role,
	}, &out, false)
	if err != nil {
		return err
	}
	return c.storeSession(out)
}

// VerifyEmail submits the OTP code and refreshes the stored session so
// verified=true takes effect immediately.
func (c *Client) VerifyEmail(ctx context.Context, code string) error {
	var out authPayload
	err := c.doJSON(ctx, http.MethodPut, "/api/v1/auth/verify", map[string]string{
		"code": code,
	}, &out, true)
	if err != nil {
		return err
	}
	return c.storeSession(out)
}

// Logout revokes the token server-side and clears the local session either
// way: a dead backend must not keep the client logged in.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, true)
	if cerr := c.creds.ClearSession(); cerr != nil {
		return cerr
	}
	return err
}

// OpenConversation finds or creates the thread with peerID and returns its
// timeline.
func (c *Client) OpenConversation(ctx context.Context, peerID string) (*Timeline, error) {
	sess := c.creds.GetSession()
	if sess == nil {
		return nil, ErrNotAuthenticated
	}
	var conv chat.Conversation
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/chat", map[string]string{
		"peer_id": peerID,
	}, &conv, true)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	tl, ok := c.timelines[conv.ID]
	if !ok {
		tl = NewTimeline(conv.ID, sess.UserID, peerID)
		c.timelines[conv.ID] = tl
	}
	return tl, nil
}

// Timeline returns the timeline for a conversation id, if opened.
func (c *Client) Timeline(conversationID string) (*Timeline, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tl, ok := c.timelines[conversationID]
	return tl, ok
}

// Send appends an optimistic entry and posts it to the backend. On success
// the entry is confirmed in place with the server record; on failure it is
// marked errored and stays visible for retry. The temp id is returned in
// both cases.
func (c *Client) Send(ctx context.Context, conversationID, body string, kind chat.MessageKind) (string, error) {
	tl, ok := c.Timeline(conversationID)
	if !ok {
		return "", fmt.Errorf("chatclient: conversation %s not opened", conversationID)
	}
	tempID, err := tl.AppendOptimistic(body, kind)
	if err != nil {
		return "", err
	}
	return tempID, c.deliver(ctx, tl, tempID)
}

// Retry resends an errored entry. It is the only path out of the error
// state; nothing retries automatically.
func (c *Client) Retry(ctx context.Context, conversationID, tempID string) error {
	tl, ok := c.Timeline(conversationID)
	if !ok {
		return fmt.Errorf("chatclient: conversation %s not opened", conversationID)
	}
	if err := tl.Retry(tempID); err != nil {
		return err
	}
	return c.deliver(ctx, tl, tempID)
}

func (c *Client) deliver(ctx context.Context, tl *Timeline, tempID string) error {
	msg, ok := tl.Get(tempID)
	if !ok {
		return ErrUnknownMessage
	}
	var server chat.Message
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/chat/"+tl.ConversationID, map[string]any{
		"body": msg.Body, "kind": int16(msg.Kind),
	}, &server, true)
	if err != nil {
		if ferr := tl.Fail(tempID); ferr != nil {
			return ferr
		}
		return err
	}
	return tl.Confirm(tempID, server)
}

// Sync pulls a page of history and ingests it; already-known ids are
// no-ops, so polling alongside pending sends is safe. Newly ingested peer
// messages are reported delivered.
func (c *Client) Sync(ctx context.Context, conversationID string, limit, offset int) error {
	tl, ok := c.Timeline(conversationID)
	if !ok {
		return fmt.Errorf("chatclient: conversation %s not opened", conversationID)
	}
	var out struct {
		Messages []chat.Message `json:"messages"`
	}
	path := fmt.Sprintf("/api/v1/chat/%s/messages?limit=%d&offset=%d", conversationID, limit, offset)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return err
	}

	var delivered []string
	for _, m := range out.Messages {
		if tl.Ingest(m) && m.SenderID == tl.PeerID {
			delivered = append(delivered, m.ID)
		}
	}
	if len(delivered) > 0 {
		return c.sendReceipts(ctx, tl, delivered, chat.StateDelivered)
	}
	return nil
}

// MarkRead applies read state locally and reports the receipt upstream.
func (c *Client) MarkRead(ctx context.Context, conversationID string, messageIDs []string) error {
	tl, ok := c.Timeline(conversationID)
	if !ok {
		return fmt.Errorf("chatclient: conversation %s not opened", conversationID)
	}
	for _, id := range messageIDs {
		_ = tl.MarkRead(id)
	}
	return c.sendReceipts(ctx, tl, messageIDs, chat.StateRead)
}

func (c *Client) sendReceipts(ctx context.Context, tl *Timeline, ids []string, target chat.DeliveryState) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/chat/"+tl.ConversationID+"/receipts", map[string]any{
		"message_ids": ids,
		"state":       target.String(),
	}, nil, true)
}

// wireFrame mirrors the websocket frames the realtime endpoint speaks.
type wireFrame struct {
	Type           string        `json:"type"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Message        *chat.Message `json:"message,omitempty"`
	MessageIDs     []string      `json:"message_ids,omitempty"`
	State          string        `json:"state,omitempty"`
}

// Listen joins the conversation over the realtime socket and applies
// inbound frames to the timeline until ctx is canceled or the socket
// drops. Incoming messages are ingested (deduplicated by id); receipt
// frames advance delivery state monotonically.
func (c *Client) Listen(ctx context.Context, conversationID string) error {
	tl, ok := c.Timeline(conversationID)
	if !ok {
		return fmt.Errorf("chatclient: conversation %s not opened", conversationID)
	}
	sess := c.creds.GetSession()
	if sess == nil {
		return ErrNotAuthenticated
	}

	wsURL, err := url.Parse(c.baseURL + "/api/v1/chat/ws")
	if err != nil {
		return err
	}
	switch wsURL.Scheme {
	case "https":
		wsURL.Scheme = "wss"
	default:
		wsURL.Scheme = "ws"
	}
	q := wsURL.Query()
	q.Set("token", sess.Token)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL.String(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	join := wireFrame{Type: "join", ConversationID: conversationID}
	if err := conn.WriteJSON(join); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		var frame wireFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		switch frame.Type {
		case "message":
			if frame.Message != nil {
				tl.Ingest(*frame.Message)
			}
		case "receipt":
			target := chat.StateDelivered
			if frame.State == "read" {
				target = chat.StateRead
			}
			for _, id := range frame.MessageIDs {
				if target == chat.StateRead {
					_ = tl.MarkRead(id)
				} else {
					_ = tl.MarkDelivered(id)
				}
			}
		}
	}
}

// doJSON performs a JSON request/response round trip. When authed is set
// the current session token is attached; its absence fails fast without a
// network call.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		sess := c.creds.GetSession()
		if sess == nil {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if jerr := json.Unmarshal(data, &apiErr); jerr == nil && apiErr.Error != "" {
			return fmt.Errorf("chatclient: %s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("chatclient: %s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
