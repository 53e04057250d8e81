package handler

import (
	"net/http"
	"time"

	"nhatro-chat/internal/services"
	"nhatro-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	service *services.AssistantService
}

func NewAssistantHandler(service *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req httpdto.AssistantChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), req.Message, req.History)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.AssistantChatResponse{
		Response:          reply.Reply,
		Timestamp:         time.Now().UTC(),
		Criteria:          reply.Criteria,
		SuggestedListings: reply.SuggestedListings,
	}))
}
