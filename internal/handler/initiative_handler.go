package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/service"
	"github.com/opsdeck/opsdeck/internal/service/initiative"
)

// InitiativeHandler 战略计划处理器
type InitiativeHandler struct {
	svc *service.Services
}

// NewInitiativeHandler 创建战略计划处理器
func NewInitiativeHandler(svc *service.Services) *InitiativeHandler {
	return &InitiativeHandler{svc: svc}
}

// Create 创建计划
func (h *InitiativeHandler) Create(c *gin.Context) {
	var req initiative.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.svc.Initiative.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, item)
}

// List 列出计划，带 q 参数时检索
func (h *InitiativeHandler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		items, err := h.svc.Initiative.Search(c.Request.Context(), q)
		if err != nil {
			errorResponse(c, err)
			return
		}
		success(c, items)
		return
	}

	items, err := h.svc.Initiative.List(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, items)
}
