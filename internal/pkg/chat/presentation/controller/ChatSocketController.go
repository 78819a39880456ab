package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	queueport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/realtime"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/presentation/middleware"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/usecase"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/persistence/repository/port"
)

const (
	pongWait       = 60 * time.Second
	maxFrameSize   = 64 * 1024
	socketDeadline = 10 * time.Second
)

// ChatSocketController upgrades authenticated requests to the realtime
// socket. Clients speak frames: join/leave manage room membership, message
// sends into a joined room, receipt reports delivered/read.
type ChatSocketController struct {
	Rooms    *realtime.Router
	Repo     repository.ChatRepository
	Send     *usecase.SendMessageUseCase
	Receipts *usecase.MarkReceiptUseCase
	Q        queueport.Client

	upgrader websocket.Upgrader
}

func NewChatSocketController(rooms *realtime.Router, repo repository.ChatRepository,
	send *usecase.SendMessageUseCase, receipts *usecase.MarkReceiptUseCase, q queueport.Client) *ChatSocketController {
	return &ChatSocketController{
		Rooms:    rooms,
		Repo:     repo,
		Send:     send,
		Receipts: receipts,
		Q:        q,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Token auth already gates the handshake; cross-origin pages
			// cannot read the token out of the app's storage.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the handshake error.
			return
		}

		conn := realtime.NewConnection(claims.UserID, ws)
		h.Rooms.Attach(conn)
		defer h.Rooms.Detach(conn)

		ws.SetReadLimit(maxFrameSize)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})

		for {
			var f frame
			if err := ws.ReadJSON(&f); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("socket closed unexpectedly", "user_id", claims.UserID, "error", err)
				}
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(pongWait))
			h.dispatch(c.Request.Context(), conn, claims.UserID, f)
		}
	}
}

func (h *ChatSocketController) dispatch(ctx context.Context, conn *realtime.Connection, userID string, f frame) {
	ctx, cancel := context.WithTimeout(ctx, socketDeadline)
	defer cancel()

	switch f.Type {
	case "join":
		h.handleJoin(ctx, conn, userID, f.ConversationID)
	case "leave":
		h.Rooms.Leave(f.ConversationID, conn)
	case "message":
		h.handleMessage(ctx, conn, userID, f)
	case "receipt":
		h.handleReceipt(ctx, conn, userID, f)
	default:
		h.reply(conn, frame{Type: "error", Error: "unknown frame type"})
	}
}

// handleJoin subscribes the connection after a membership check; sockets
// never see rooms their user does not belong to.
func (h *ChatSocketController) handleJoin(ctx context.Context, conn *realtime.Connection, userID, conversationID string) {
	conv, err := h.Repo.GetConversation(ctx, conversationID)
	if err != nil || !conv.HasParticipant(userID) {
		h.reply(conn, frame{Type: "error", ConversationID: conversationID, Error: "conversation not available"})
		return
	}
	h.Rooms.Join(conversationID, conn)
	h.reply(conn, frame{Type: "joined", ConversationID: conversationID})
}

func (h *ChatSocketController) handleMessage(ctx context.Context, conn *realtime.Connection, userID string, f frame) {
	if f.Message == nil {
		h.reply(conn, frame{Type: "error", ConversationID: f.ConversationID, Error: "message frame missing body"})
		return
	}
	msg, err := h.Send.Execute(ctx, usecase.SendMessageInput{
		ConversationID: f.ConversationID,
		SenderID:       userID,
		Body:           f.Message.Body,
		Kind:           f.Message.Kind,
	})
	if err != nil {
		h.reply(conn, frame{Type: "error", ConversationID: f.ConversationID, Error: err.Error()})
		return
	}

	// Echo the canonical record to the sender so an optimistic entry can be
	// confirmed, then fan out to the rest of the room.
	h.reply(conn, frame{Type: "message", ConversationID: msg.ConversationID, Message: msg})
	fanOutMessage(ctx, h.Rooms, h.Q, msg)
}

func (h *ChatSocketController) handleReceipt(ctx context.Context, conn *realtime.Connection, userID string, f frame) {
	target, ok := parseReceiptState(f.State)
	if !ok {
		h.reply(conn, frame{Type: "error", ConversationID: f.ConversationID, Error: "state must be delivered or read"})
		return
	}
	updated, err := h.Receipts.Execute(ctx, usecase.MarkReceiptInput{
		ConversationID: f.ConversationID,
		UserID:         userID,
		MessageIDs:     f.MessageIDs,
		Target:         target,
	})
	if err != nil {
		h.reply(conn, frame{Type: "error", ConversationID: f.ConversationID, Error: err.Error()})
		return
	}
	if updated == 0 {
		return
	}
	data, err := json.Marshal(frame{
		Type:           "receipt",
		ConversationID: f.ConversationID,
		MessageIDs:     f.MessageIDs,
		State:          target.String(),
	})
	if err == nil {
		h.Rooms.Broadcast(f.ConversationID, data, userID)
	}
}

func (h *ChatSocketController) reply(conn *realtime.Connection, f frame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	_ = conn.Send(data)
}
