package initiative

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
)

// Service 战略计划服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建战略计划服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateRequest 创建计划请求
type CreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Quarter     string `json:"quarter"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Create 创建计划
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.Initiative, error) {
	status := req.Status
	if status == "" {
		status = "planned"
	}

	initiative := &model.Initiative{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Quarter:     req.Quarter,
		Status:      status,
		Description: req.Description,
	}

	if err := s.repo.Initiative.Create(initiative); err != nil {
		return nil, fmt.Errorf("failed to create initiative: %w", err)
	}

	return initiative, nil
}

// List 列出全部计划
func (s *Service) List(ctx context.Context) ([]*model.Initiative, error) {
	return s.repo.Initiative.List()
}

// Search 检索计划
func (s *Service) Search(ctx context.Context, q string) ([]*model.Initiative, error) {
	return s.repo.Initiative.Search(q)
}
