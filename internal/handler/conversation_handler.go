package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/middleware"
	"github.com/opsdeck/opsdeck/internal/repository"
	"github.com/opsdeck/opsdeck/internal/service"
	"github.com/opsdeck/opsdeck/internal/service/conversation"
)

// ConversationHandler 会话处理器
type ConversationHandler struct {
	svc *service.Services
}

// NewConversationHandler 创建会话处理器
func NewConversationHandler(svc *service.Services) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// Create 创建空会话
func (h *ConversationHandler) Create(c *gin.Context) {
	var req conversation.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	conv, err := h.svc.Conversation.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, conv)
}

// List 按过滤条件列出会话
func (h *ConversationHandler) List(c *gin.Context) {
	filter := &repository.ConversationFilter{
		Status: c.Query("status"),
		Tag:    c.Query("tag"),
	}
	if v := c.Query("pinned"); v != "" {
		pinned := v == "true"
		filter.Pinned = &pinned
	}
	if v := c.Query("starred"); v != "" {
		starred := v == "true"
		filter.Starred = &starred
	}
	if v := c.Query("archived"); v != "" {
		archived := v == "true"
		filter.Archived = &archived
	}

	page, size := getPagination(c)
	convs, err := h.svc.Conversation.List(c.Request.Context(), filter, page, size)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, convs)
}

// Search 按标题或摘要检索会话
func (h *ConversationHandler) Search(c *gin.Context) {
	page, size := getPagination(c)
	convs, err := h.svc.Conversation.Search(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, convs)
}

// Get 获取会话
func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.svc.Conversation.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "conversation not found")
		return
	}

	success(c, conv)
}

// GetMessages 获取会话消息
func (h *ConversationHandler) GetMessages(c *gin.Context) {
	msgs, err := h.svc.Conversation.GetMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, msgs)
}

// Update 更新会话的组织字段
func (h *ConversationHandler) Update(c *gin.Context) {
	var req conversation.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	conv, err := h.svc.Conversation.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, conv)
}

// Delete 删除会话
func (h *ConversationHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if err := h.svc.Conversation.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, nil)
}

// ArchiveOld 批量归档 N 天前的会话
func (h *ConversationHandler) ArchiveOld(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	count, err := h.svc.Conversation.ArchiveOld(c.Request.Context(), days)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"archived": count})
}

// Select 标记当前打开的会话
func (h *ConversationHandler) Select(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if err := h.svc.Conversation.Select(c.Request.Context(), userID, c.Param("id")); err != nil {
		notFound(c, "conversation not found")
		return
	}

	success(c, nil)
}

// Selected 返回当前选中的会话 ID
func (h *ConversationHandler) Selected(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	success(c, gin.H{"conversation_id": h.svc.Conversation.Selected(c.Request.Context(), userID)})
}

// EditMessageRequest 编辑消息请求
type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// EditMessage 编辑消息内容
func (h *ConversationHandler) EditMessage(c *gin.Context) {
	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.svc.Conversation.EditMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, msg)
}

// DeleteMessage 软删除消息
func (h *ConversationHandler) DeleteMessage(c *gin.Context) {
	if err := h.svc.Conversation.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, nil)
}
