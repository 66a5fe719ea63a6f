package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/service"
	"github.com/opsdeck/opsdeck/internal/service/crm"
)

// CRMHandler 客户关系处理器
type CRMHandler struct {
	svc *service.Services
}

// NewCRMHandler 创建客户关系处理器
func NewCRMHandler(svc *service.Services) *CRMHandler {
	return &CRMHandler{svc: svc}
}

// CreateContact 创建联系人
func (h *CRMHandler) CreateContact(c *gin.Context) {
	var req crm.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.svc.CRM.CreateContact(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, item)
}

// ListContacts 列出联系人
func (h *CRMHandler) ListContacts(c *gin.Context) {
	items, err := h.svc.CRM.ListContacts(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, items)
}

// CreateDeal 创建商机
func (h *CRMHandler) CreateDeal(c *gin.Context) {
	var req crm.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.svc.CRM.CreateDeal(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, item)
}

// ListDeals 列出商机
func (h *CRMHandler) ListDeals(c *gin.Context) {
	items, err := h.svc.CRM.ListDeals(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, items)
}

// CreateInvoice 创建发票
func (h *CRMHandler) CreateInvoice(c *gin.Context) {
	var req crm.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.svc.CRM.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, item)
}

// ListInvoices 列出发票
func (h *CRMHandler) ListInvoices(c *gin.Context) {
	items, err := h.svc.CRM.ListInvoices(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, items)
}
