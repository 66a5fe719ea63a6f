package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
)

// Service 客户关系服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建客户关系服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateContactRequest 创建联系人请求
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

// CreateContact 创建联系人
func (s *Service) CreateContact(ctx context.Context, req *CreateContactRequest) (*model.Contact, error) {
	contact := &model.Contact{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	}

	if err := s.repo.CRM.CreateContact(contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// ListContacts 列出联系人
func (s *Service) ListContacts(ctx context.Context) ([]*model.Contact, error) {
	return s.repo.CRM.ListContacts()
}

// CreateDealRequest 创建商机请求
type CreateDealRequest struct {
	Name      string  `json:"name" binding:"required"`
	ContactID string  `json:"contact_id"`
	Stage     string  `json:"stage"`
	Value     float64 `json:"value"`
}

// CreateDeal 创建商机
func (s *Service) CreateDeal(ctx context.Context, req *CreateDealRequest) (*model.Deal, error) {
	stage := req.Stage
	if stage == "" {
		stage = "lead"
	}

	deal := &model.Deal{
		ID:        uuid.New().String(),
		Name:      req.Name,
		ContactID: req.ContactID,
		Stage:     stage,
		Value:     req.Value,
	}

	if err := s.repo.CRM.CreateDeal(deal); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	return deal, nil
}

// ListDeals 列出商机
func (s *Service) ListDeals(ctx context.Context) ([]*model.Deal, error) {
	return s.repo.CRM.ListDeals()
}

// CreateInvoiceRequest 创建发票请求
type CreateInvoiceRequest struct {
	Number    string     `json:"number" binding:"required"`
	ContactID string     `json:"contact_id"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"due_date"`
}

// CreateInvoice 创建发票
func (s *Service) CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*model.Invoice, error) {
	status := req.Status
	if status == "" {
		status = "draft"
	}

	invoice := &model.Invoice{
		ID:        uuid.New().String(),
		Number:    req.Number,
		ContactID: req.ContactID,
		Amount:    req.Amount,
		Status:    status,
		DueDate:   req.DueDate,
	}

	if err := s.repo.CRM.CreateInvoice(invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return invoice, nil
}

// ListInvoices 列出发票
func (s *Service) ListInvoices(ctx context.Context) ([]*model.Invoice, error) {
	return s.repo.CRM.ListInvoices()
}
