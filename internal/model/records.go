package model

import "time"

// SOP 标准操作流程
type SOP struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	Category  string    `gorm:"index;size:100" json:"category"`
	Content   string    `gorm:"type:text" json:"content"`
	Tags      string    `gorm:"type:jsonb" json:"tags,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Project 项目
type Project struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	Name        string        `gorm:"size:255" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Status      string        `gorm:"index;size:20;default:active" json:"status"` // active, paused, done
	Color       string        `gorm:"size:20" json:"color"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Tasks       []ProjectTask `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProjectTask 项目任务
type ProjectTask struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string    `gorm:"index;size:36" json:"project_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Done      bool      `gorm:"default:false" json:"done"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Expense 支出项目
type Expense struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:255" json:"name"`
	Amount       float64   `json:"amount"`
	BillingCycle string    `gorm:"size:20" json:"billing_cycle"` // monthly, yearly, once
	Category     string    `gorm:"index;size:100" json:"category"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Initiative 战略计划
type Initiative struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Quarter     string    `gorm:"index;size:10" json:"quarter"` // 如 2026-Q3
	Status      string    `gorm:"index;size:20;default:planned" json:"status"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Contact CRM 联系人
type Contact struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Company   string    `gorm:"size:255" json:"company,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Deal CRM 商机
type Deal struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	ContactID string    `gorm:"index;size:36" json:"contact_id,omitempty"`
	Value     float64   `json:"value"`
	Stage     string    `gorm:"index;size:20;default:lead" json:"stage"` // lead, proposal, won, lost
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Invoice 发票
type Invoice struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Number    string     `gorm:"size:50;uniqueIndex" json:"number"`
	ContactID string     `gorm:"index;size:36" json:"contact_id,omitempty"`
	Amount    float64    `json:"amount"`
	Status    string     `gorm:"index;size:20;default:draft" json:"status"` // draft, sent, paid, overdue
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (SOP) TableName() string         { return "sops" }
func (Project) TableName() string     { return "projects" }
func (ProjectTask) TableName() string { return "project_tasks" }
func (Expense) TableName() string     { return "expenses" }
func (Initiative) TableName() string  { return "initiatives" }
func (Contact) TableName() string     { return "contacts" }
func (Deal) TableName() string        { return "deals" }
func (Invoice) TableName() string     { return "invoices" }
