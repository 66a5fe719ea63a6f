package repository

import (
	"github.com/opsdeck/opsdeck/internal/model"
	"gorm.io/gorm"
)

// ProjectRepository 项目数据访问
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建项目仓库
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create 创建项目
func (r *ProjectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

// GetByID 获取项目（含任务）
func (r *ProjectRepository) GetByID(id string) (*model.Project, error) {
	var project model.Project
	err := r.db.Preload("Tasks").Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List 列出全部项目（含任务）
func (r *ProjectRepository) List() ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.Preload("Tasks").Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// ListByStatus 按状态列出项目
func (r *ProjectRepository) ListByStatus(status string) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// Search 按名称检索项目
func (r *ProjectRepository) Search(q string) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.Preload("Tasks").Where("name ILIKE ?", "%"+q+"%").
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// Update 更新项目
func (r *ProjectRepository) Update(project *model.Project) error {
	return r.db.Save(project).Error
}

// AddTask 为项目添加任务
func (r *ProjectRepository) AddTask(task *model.ProjectTask) error {
	return r.db.Create(task).Error
}

// Count 统计项目数量
func (r *ProjectRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Project{}).Count(&count).Error
	return count, err
}
