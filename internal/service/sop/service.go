package sop

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
)

// Service SOP 服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建 SOP 服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateRequest 创建 SOP 请求
type CreateRequest struct {
	Title    string   `json:"title" binding:"required"`
	Category string   `json:"category"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
}

// Create 创建 SOP
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.SOP, error) {
	sop := &model.SOP{
		ID:       uuid.New().String(),
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
	}
	if len(req.Tags) > 0 {
		data, _ := json.Marshal(req.Tags)
		sop.Tags = string(data)
	}

	if err := s.repo.SOP.Create(sop); err != nil {
		return nil, fmt.Errorf("failed to create sop: %w", err)
	}

	return sop, nil
}

// Get 获取 SOP
func (s *Service) Get(ctx context.Context, id string) (*model.SOP, error) {
	return s.repo.SOP.GetByID(id)
}

// List 列出全部 SOP
func (s *Service) List(ctx context.Context) ([]*model.SOP, error) {
	return s.repo.SOP.List()
}

// Search 检索 SOP
func (s *Service) Search(ctx context.Context, q string) ([]*model.SOP, error) {
	return s.repo.SOP.Search(q)
}
