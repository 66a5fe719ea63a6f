package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/service"
	"github.com/opsdeck/opsdeck/internal/service/expense"
)

// ExpenseHandler 支出处理器
type ExpenseHandler struct {
	svc *service.Services
}

// NewExpenseHandler 创建支出处理器
func NewExpenseHandler(svc *service.Services) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// Create 创建支出
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expense.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.svc.Expense.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, item)
}

// List 列出支出，带 q 参数时检索
func (h *ExpenseHandler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		items, err := h.svc.Expense.Search(c.Request.Context(), q)
		if err != nil {
			errorResponse(c, err)
			return
		}
		success(c, items)
		return
	}

	items, err := h.svc.Expense.List(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, items)
}
