package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nhatro-chat/internal/auth"
	"nhatro-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// inboundFrame is what connected clients may send: subscription control for
// conversation channels. Everything else flows over HTTP.
type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
}

const (
	frameJoinConversation  = "join_conversation"
	frameLeaveConversation = "leave_conversation"
)

type Handler struct {
	verifier *auth.TokenVerifier
	hub      *Hub
}

func NewHandler(verifier *auth.TokenVerifier, hub *Hub) *Handler {
	return &Handler{verifier: verifier, hub: hub}
}

// Connect upgrades the request and serves the socket until it closes. The
// handshake requires a valid token; the connection is auto-subscribed to the
// user's own channel.
func (h *Handler) Connect(c *gin.Context) {
	userID, err := h.verifier.Parse(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, userID)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	h.hub.Subscribe(client, UserChannel(userID))
	go client.WriteLoop(ctx)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		h.handleFrame(client, raw)
	}

	h.hub.Unregister(client)
}

func (h *Handler) handleFrame(client *Client, raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return
	}
	conversationID, err := uuid.Parse(frame.ConversationID)
	if err != nil {
		return
	}

	switch frame.Type {
	case frameJoinConversation:
		h.hub.Subscribe(client, ConversationChannel(conversationID))
	case frameLeaveConversation:
		h.hub.Unsubscribe(client, ConversationChannel(conversationID))
	}
}
