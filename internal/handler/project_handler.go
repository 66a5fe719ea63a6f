package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/service"
	"github.com/opsdeck/opsdeck/internal/service/project"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	svc *service.Services
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(svc *service.Services) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create 创建项目
func (h *ProjectHandler) Create(c *gin.Context) {
	var req project.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.svc.Project.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, item)
}

// Get 获取项目及其任务
func (h *ProjectHandler) Get(c *gin.Context) {
	item, err := h.svc.Project.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "project not found")
		return
	}

	success(c, item)
}

// List 列出项目，带 q 参数时检索
func (h *ProjectHandler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		items, err := h.svc.Project.Search(c.Request.Context(), q)
		if err != nil {
			errorResponse(c, err)
			return
		}
		success(c, items)
		return
	}

	items, err := h.svc.Project.List(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, items)
}

// AddTaskRequest 添加任务请求
type AddTaskRequest struct {
	Title string `json:"title" binding:"required"`
}

// AddTask 为项目添加任务
func (h *ProjectHandler) AddTask(c *gin.Context) {
	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.svc.Project.AddTask(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, task)
}
