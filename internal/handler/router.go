package handler

import (
	"net/http"

	"nhatro-chat/internal/auth"
	"nhatro-chat/internal/middleware"
	"nhatro-chat/internal/realtime"
	"nhatro-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Conversations *ConversationHandler
	Messages      *MessageHandler
	Assistant     *AssistantHandler
	Bookings      *BookingHandler
	Websocket     *realtime.Handler
	Verifier      *auth.TokenVerifier
	Log           *logger.Logger
}

// Setup builds the gin engine with all routes and middleware attached.
func (r *Router) Setup(mode string) *gin.Engine {
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.LoggingMiddleware(r.Log))
	engine.Use(middleware.ErrorHandler(r.Log))

	engine.GET("/ws", r.Websocket.Connect)

	api := engine.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(r.Verifier))

	authed.POST("/conversations", r.Conversations.Create)
	authed.GET("/conversations", r.Conversations.List)
	authed.GET("/conversations/:id", r.Conversations.Get)
	authed.DELETE("/conversations/:id", r.Conversations.Delete)
	authed.GET("/conversations/:id/messages", r.Messages.List)
	authed.GET("/conversations/:id/pinned", r.Messages.ListPinned)
	authed.PUT("/conversations/:id/read", r.Messages.MarkRead)

	authed.POST("/messages", r.Messages.Send)
	authed.POST("/messages/reply", r.Messages.Send)
	authed.POST("/messages/forward", r.Messages.Forward)
	authed.PUT("/messages/:id", r.Messages.Edit)
	authed.DELETE("/messages/:id", r.Messages.Delete)
	authed.PATCH("/messages/:id/pin", r.Messages.Pin)
	authed.PATCH("/messages/:id/react", r.Messages.React)
	authed.GET("/unread-count", r.Messages.UnreadCount)

	authed.POST("/ai/chat", r.Assistant.Chat)

	authed.POST("/bookings", r.Bookings.Create)
	authed.GET("/bookings", r.Bookings.List)
	authed.PUT("/bookings/:id/status", r.Bookings.UpdateStatus)

	return engine
}
