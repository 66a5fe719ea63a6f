package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
)

// Service 支出服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建支出服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateRequest 创建支出请求
type CreateRequest struct {
	Name         string  `json:"name" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	BillingCycle string  `json:"billing_cycle"`
	Category     string  `json:"category"`
	Notes        string  `json:"notes"`
}

// Create 创建支出
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.Expense, error) {
	cycle := req.BillingCycle
	if cycle == "" {
		cycle = "monthly"
	}

	expense := &model.Expense{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Amount:       req.Amount,
		BillingCycle: cycle,
		Category:     req.Category,
		Notes:        req.Notes,
	}

	if err := s.repo.Expense.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// List 列出全部支出
func (s *Service) List(ctx context.Context) ([]*model.Expense, error) {
	return s.repo.Expense.List()
}

// Search 检索支出
func (s *Service) Search(ctx context.Context, q string) ([]*model.Expense, error) {
	return s.repo.Expense.Search(q)
}
