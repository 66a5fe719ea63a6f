package project

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
)

// colorPalette 项目颜色的固定调色板
var colorPalette = []string{
	"#ef4444", "#f97316", "#eab308", "#22c55e",
	"#14b8a6", "#3b82f6", "#8b5cf6", "#ec4899",
}

// Service 项目服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建项目服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateRequest 创建项目请求
type CreateRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Color       string     `json:"color"`
	DueDate     *time.Time `json:"due_date"`
}

// Create 创建项目，未指定颜色时从调色板随机分配
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.Project, error) {
	status := req.Status
	if status == "" {
		status = "active"
	}
	color := req.Color
	if color == "" {
		color = colorPalette[rand.Intn(len(colorPalette))]
	}

	project := &model.Project{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		Color:       color,
		DueDate:     req.DueDate,
	}

	if err := s.repo.Project.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Get 获取项目
func (s *Service) Get(ctx context.Context, id string) (*model.Project, error) {
	return s.repo.Project.GetByID(id)
}

// List 列出全部项目
func (s *Service) List(ctx context.Context) ([]*model.Project, error) {
	return s.repo.Project.List()
}

// Search 检索项目
func (s *Service) Search(ctx context.Context, q string) ([]*model.Project, error) {
	return s.repo.Project.Search(q)
}

// AddTask 为项目添加任务
func (s *Service) AddTask(ctx context.Context, projectID, title string) (*model.ProjectTask, error) {
	if _, err := s.repo.Project.GetByID(projectID); err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	task := &model.ProjectTask{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
	}

	if err := s.repo.Project.AddTask(task); err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}

	return task, nil
}
