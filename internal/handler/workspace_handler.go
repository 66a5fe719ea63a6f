package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/service"
)

// WorkspaceHandler 工作台处理器
type WorkspaceHandler struct {
	svc *service.Services
}

// NewWorkspaceHandler 创建工作台处理器
func NewWorkspaceHandler(svc *service.Services) *WorkspaceHandler {
	return &WorkspaceHandler{svc: svc}
}

// GetContext 获取工作台状态快照
func (h *WorkspaceHandler) GetContext(c *gin.Context) {
	summary, err := h.svc.Workspace.GetSummary(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, summary)
}
