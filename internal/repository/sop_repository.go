package repository

import (
	"github.com/opsdeck/opsdeck/internal/model"
	"gorm.io/gorm"
)

// SOPRepository SOP 数据访问
type SOPRepository struct {
	db *gorm.DB
}

// NewSOPRepository 创建 SOP 仓库
func NewSOPRepository(db *gorm.DB) *SOPRepository {
	return &SOPRepository{db: db}
}

// Create 创建 SOP
func (r *SOPRepository) Create(sop *model.SOP) error {
	return r.db.Create(sop).Error
}

// GetByID 获取 SOP
func (r *SOPRepository) GetByID(id string) (*model.SOP, error) {
	var sop model.SOP
	err := r.db.Where("id = ?", id).First(&sop).Error
	if err != nil {
		return nil, err
	}
	return &sop, nil
}

// List 列出全部 SOP
func (r *SOPRepository) List() ([]*model.SOP, error) {
	var sops []*model.SOP
	err := r.db.Order("created_at DESC").Find(&sops).Error
	return sops, err
}

// Search 按标题/分类检索 SOP
func (r *SOPRepository) Search(q string) ([]*model.SOP, error) {
	var sops []*model.SOP
	pattern := "%" + q + "%"
	err := r.db.Where("title ILIKE ? OR category ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&sops).Error
	return sops, err
}

// Count 统计 SOP 数量
func (r *SOPRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.SOP{}).Count(&count).Error
	return count, err
}
