// Package handler 提供 HTTP 处理器
package handler

import (
	"github.com/redis/go-redis/v9"

	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/database"
	"github.com/opsdeck/opsdeck/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Assistant    *AssistantHandler
	Conversation *ConversationHandler
	SOP          *SOPHandler
	Project      *ProjectHandler
	Expense      *ExpenseHandler
	Initiative   *InitiativeHandler
	CRM          *CRMHandler
	Workspace    *WorkspaceHandler
	Auth         *AuthHandler
	File         *FileHandler
	System       *SystemHandler

	Services *service.Services
}

// NewHandlers 创建全部处理器
func NewHandlers(svc *service.Services, db *database.DB, redisClient *redis.Client, cfg *config.Config) *Handlers {
	return &Handlers{
		Assistant:    NewAssistantHandler(svc),
		Conversation: NewConversationHandler(svc),
		SOP:          NewSOPHandler(svc),
		Project:      NewProjectHandler(svc),
		Expense:      NewExpenseHandler(svc),
		Initiative:   NewInitiativeHandler(svc),
		CRM:          NewCRMHandler(svc),
		Workspace:    NewWorkspaceHandler(svc),
		Auth:         NewAuthHandler(svc),
		File:         NewFileHandler(svc),
		System:       NewSystemHandler(db, redisClient, cfg),
		Services:     svc,
	}
}
