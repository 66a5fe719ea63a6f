package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/service"
	"github.com/opsdeck/opsdeck/internal/service/sop"
)

// SOPHandler SOP 处理器
type SOPHandler struct {
	svc *service.Services
}

// NewSOPHandler 创建 SOP 处理器
func NewSOPHandler(svc *service.Services) *SOPHandler {
	return &SOPHandler{svc: svc}
}

// Create 创建 SOP
func (h *SOPHandler) Create(c *gin.Context) {
	var req sop.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.svc.SOP.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, item)
}

// Get 获取 SOP
func (h *SOPHandler) Get(c *gin.Context) {
	item, err := h.svc.SOP.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "sop not found")
		return
	}

	success(c, item)
}

// List 列出 SOP，带 q 参数时检索
func (h *SOPHandler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		items, err := h.svc.SOP.Search(c.Request.Context(), q)
		if err != nil {
			errorResponse(c, err)
			return
		}
		success(c, items)
		return
	}

	items, err := h.svc.SOP.List(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, items)
}
