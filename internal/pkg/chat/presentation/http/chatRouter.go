package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	queueport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/realtime"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/usecase"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/persistence/repository/adapter"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/presentation/controller"
)

// RegisterRoutes registers chat endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes;
// all of them require an authenticated session.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, q queueport.Client, rooms *realtime.Router, authMW gin.HandlerFunc) {
	repo := adapter.NewPgChatRepository(pool)
	sendUC := usecase.NewSendMessageUseCase(repo)
	receiptUC := usecase.NewMarkReceiptUseCase(repo)

	openCtl := controller.NewOpenConversationController(usecase.NewOpenConversationUseCase(repo))
	listCtl := controller.NewListConversationsController(usecase.NewListConversationsUseCase(repo))
	getMsgCtl := controller.NewGetMessageController(usecase.NewGetMessageUseCase(repo))
	sendMsgCtl := controller.NewSendMessageController(sendUC, rooms, q)
	receiptCtl := controller.NewReceiptController(receiptUC, rooms)
	socketCtl := controller.NewChatSocketController(rooms, repo, sendUC, receiptUC, q)

	// POST /api/v1/chat -> find or create the conversation with a peer
	g.POST("/chat", authMW, openCtl.Handle())

	// GET /api/v1/chat -> the caller's inbox
	g.GET("/chat", authMW, listCtl.Handle())

	// POST /api/v1/chat/:chatId -> send a message into a conversation
	g.POST("/chat/:chatId", authMW, sendMsgCtl.Handle())

	// GET /api/v1/chat/:chatId/messages -> fetch a page of history
	g.GET("/chat/:chatId/messages", authMW, getMsgCtl.Handle())

	// POST /api/v1/chat/:chatId/receipts -> report delivered/read receipts
	g.POST("/chat/:chatId/receipts", authMW, receiptCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	g.GET("/chat/ws", authMW, socketCtl.Handle())
}
