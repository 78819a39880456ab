package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/meeting/presentation/controller"
)

// RegisterRoutes registers meeting endpoints under the given router group.
func RegisterRoutes(g *gin.RouterGroup, authMW gin.HandlerFunc) {
	createCtl := controller.NewCreateMeetingController()

	// POST /api/v1/meetings -> issue a video room for a session
	g.POST("/meetings", authMW, createCtl.Handle())
}
