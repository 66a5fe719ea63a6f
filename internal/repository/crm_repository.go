package repository

import (
	"github.com/opsdeck/opsdeck/internal/model"
	"gorm.io/gorm"
)

// CRMRepository 联系人/商机/发票数据访问
type CRMRepository struct {
	db *gorm.DB
}

// NewCRMRepository 创建 CRM 仓库
func NewCRMRepository(db *gorm.DB) *CRMRepository {
	return &CRMRepository{db: db}
}

// CreateContact 创建联系人
func (r *CRMRepository) CreateContact(contact *model.Contact) error {
	return r.db.Create(contact).Error
}

// ListContacts 列出联系人
func (r *CRMRepository) ListContacts() ([]*model.Contact, error) {
	var contacts []*model.Contact
	err := r.db.Order("name ASC").Find(&contacts).Error
	return contacts, err
}

// CreateDeal 创建商机
func (r *CRMRepository) CreateDeal(deal *model.Deal) error {
	return r.db.Create(deal).Error
}

// ListDeals 列出商机
func (r *CRMRepository) ListDeals() ([]*model.Deal, error) {
	var deals []*model.Deal
	err := r.db.Order("created_at DESC").Find(&deals).Error
	return deals, err
}

// CreateInvoice 创建发票
func (r *CRMRepository) CreateInvoice(invoice *model.Invoice) error {
	return r.db.Create(invoice).Error
}

// ListInvoices 列出发票
func (r *CRMRepository) ListInvoices() ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	err := r.db.Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

// CountContacts 统计联系人数量
func (r *CRMRepository) CountContacts() (int64, error) {
	var count int64
	err := r.db.Model(&model.Contact{}).Count(&count).Error
	return count, err
}

// CountOpenDeals 统计未关闭商机数量
func (r *CRMRepository) CountOpenDeals() (int64, error) {
	var count int64
	err := r.db.Model(&model.Deal{}).Where("stage NOT IN ?", []string{"won", "lost"}).Count(&count).Error
	return count, err
}

// CountUnpaidInvoices 统计未支付发票数量
func (r *CRMRepository) CountUnpaidInvoices() (int64, error) {
	var count int64
	err := r.db.Model(&model.Invoice{}).Where("status IN ?", []string{"sent", "overdue"}).Count(&count).Error
	return count, err
}
