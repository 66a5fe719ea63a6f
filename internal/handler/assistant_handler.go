package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/middleware"
	"github.com/opsdeck/opsdeck/internal/service"
	"github.com/opsdeck/opsdeck/internal/service/assistant"
)

// AssistantHandler 助手对话处理器
type AssistantHandler struct {
	svc *service.Services
}

// NewAssistantHandler 创建助手对话处理器
func NewAssistantHandler(svc *service.Services) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// Chat 执行一次助手交互
// 新会话自动创建并标记为该客户端当前选中的会话
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req assistant.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.Assistant.Chat(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	if userID, ok := middleware.GetUserID(c); ok {
		h.svc.Selection.Select(c.Request.Context(), userID, resp.ConversationID)
	}

	success(c, resp)
}
