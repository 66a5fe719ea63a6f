package repository

import (
	"github.com/opsdeck/opsdeck/internal/model"
	"gorm.io/gorm"
)

// ExpenseRepository 支出数据访问
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository 创建支出仓库
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create 创建支出
func (r *ExpenseRepository) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

// List 列出全部支出
func (r *ExpenseRepository) List() ([]*model.Expense, error) {
	var expenses []*model.Expense
	err := r.db.Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

// Search 按名称/分类检索支出
func (r *ExpenseRepository) Search(q string) ([]*model.Expense, error) {
	var expenses []*model.Expense
	pattern := "%" + q + "%"
	err := r.db.Where("name ILIKE ? OR category ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

// MonthlyTotal 统计月度经常性支出总额
// yearly 按 1/12 折算，一次性支出不计入
func (r *ExpenseRepository) MonthlyTotal() (float64, error) {
	var expenses []*model.Expense
	if err := r.db.Where("billing_cycle IN ?", []string{"monthly", "yearly"}).Find(&expenses).Error; err != nil {
		return 0, err
	}

	var total float64
	for _, e := range expenses {
		switch e.BillingCycle {
		case "monthly":
			total += e.Amount
		case "yearly":
			total += e.Amount / 12
		}
	}
	return total, nil
}

// Count 统计支出数量
func (r *ExpenseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Expense{}).Count(&count).Error
	return count, err
}
