package repository

import (
	"github.com/opsdeck/opsdeck/internal/model"
	"gorm.io/gorm"
)

// InitiativeRepository 战略计划数据访问
type InitiativeRepository struct {
	db *gorm.DB
}

// NewInitiativeRepository 创建战略计划仓库
func NewInitiativeRepository(db *gorm.DB) *InitiativeRepository {
	return &InitiativeRepository{db: db}
}

// Create 创建计划
func (r *InitiativeRepository) Create(initiative *model.Initiative) error {
	return r.db.Create(initiative).Error
}

// List 列出全部计划
func (r *InitiativeRepository) List() ([]*model.Initiative, error) {
	var initiatives []*model.Initiative
	err := r.db.Order("quarter DESC, created_at DESC").Find(&initiatives).Error
	return initiatives, err
}

// Search 按标题/季度检索计划
func (r *InitiativeRepository) Search(q string) ([]*model.Initiative, error) {
	var initiatives []*model.Initiative
	pattern := "%" + q + "%"
	err := r.db.Where("title ILIKE ? OR quarter ILIKE ?", pattern, pattern).
		Order("quarter DESC, created_at DESC").
		Find(&initiatives).Error
	return initiatives, err
}

// Count 统计计划数量
func (r *InitiativeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Initiative{}).Count(&count).Error
	return count, err
}
