package workspace

import (
	"context"
	"fmt"

	"github.com/opsdeck/opsdeck/internal/repository"
)

// Service 工作台总览服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建工作台总览服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// Summary 工作台当前状态快照
type Summary struct {
	SOPCount            int64    `json:"sop_count"`
	ProjectCount        int64    `json:"project_count"`
	ActiveProjects      []string `json:"active_projects"`
	ExpenseCount        int64    `json:"expense_count"`
	MonthlyExpenseTotal float64  `json:"monthly_expense_total"`
	InitiativeCount     int64    `json:"initiative_count"`
	ContactCount        int64    `json:"contact_count"`
	OpenDealCount       int64    `json:"open_deal_count"`
	UnpaidInvoiceCount  int64    `json:"unpaid_invoice_count"`
}

// GetSummary 汇总各类业务记录的当前状态
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	var err error
	if summary.SOPCount, err = s.repo.SOP.Count(); err != nil {
		return nil, fmt.Errorf("failed to count sops: %w", err)
	}
	if summary.ProjectCount, err = s.repo.Project.Count(); err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	if summary.ExpenseCount, err = s.repo.Expense.Count(); err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}
	if summary.MonthlyExpenseTotal, err = s.repo.Expense.MonthlyTotal(); err != nil {
		return nil, fmt.Errorf("failed to total expenses: %w", err)
	}
	if summary.InitiativeCount, err = s.repo.Initiative.Count(); err != nil {
		return nil, fmt.Errorf("failed to count initiatives: %w", err)
	}
	if summary.ContactCount, err = s.repo.CRM.CountContacts(); err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	if summary.OpenDealCount, err = s.repo.CRM.CountOpenDeals(); err != nil {
		return nil, fmt.Errorf("failed to count deals: %w", err)
	}
	if summary.UnpaidInvoiceCount, err = s.repo.CRM.CountUnpaidInvoices(); err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	active, err := s.repo.Project.ListByStatus("active")
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}
	summary.ActiveProjects = make([]string, 0, len(active))
	for _, p := range active {
		summary.ActiveProjects = append(summary.ActiveProjects, p.Name)
	}

	return summary, nil
}
