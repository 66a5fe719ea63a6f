// Package service 装配全部业务服务
package service

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/redis/go-redis/v9"

	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/repository"
	"github.com/opsdeck/opsdeck/internal/service/assistant"
	"github.com/opsdeck/opsdeck/internal/service/auth"
	"github.com/opsdeck/opsdeck/internal/service/conversation"
	"github.com/opsdeck/opsdeck/internal/service/crm"
	"github.com/opsdeck/opsdeck/internal/service/expense"
	"github.com/opsdeck/opsdeck/internal/service/file"
	"github.com/opsdeck/opsdeck/internal/service/initiative"
	"github.com/opsdeck/opsdeck/internal/service/project"
	"github.com/opsdeck/opsdeck/internal/service/session"
	"github.com/opsdeck/opsdeck/internal/service/sop"
	"github.com/opsdeck/opsdeck/internal/service/tools"
	"github.com/opsdeck/opsdeck/internal/service/workspace"
)

// Services 服务集合
type Services struct {
	Assistant    *assistant.Service
	Conversation *conversation.Service
	SOP          *sop.Service
	Project      *project.Service
	Expense      *expense.Service
	Initiative   *initiative.Service
	CRM          *crm.Service
	Workspace    *workspace.Service
	Auth         *auth.Service
	File         *file.Service

	Config    *config.Config
	Selection *session.Manager
}

// NewServices 创建全部服务
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	ctx := context.Background()

	selection := session.NewManager(redisClient)

	sopSvc := sop.NewService(repo)
	projectSvc := project.NewService(repo)
	expenseSvc := expense.NewService(repo)
	initiativeSvc := initiative.NewService(repo)
	crmSvc := crm.NewService(repo)
	workspaceSvc := workspace.NewService(repo)

	registry, err := tools.NewRegistry(tools.NewCatalog(tools.Catalog{
		Workspace:   workspaceSvc,
		SOPs:        sopSvc,
		Projects:    projectSvc,
		Expenses:    expenseSvc,
		Initiatives: initiativeSvc,
	})...)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	chatModel, err := newToolCallingChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	assistantSvc, err := assistant.NewService(ctx, &assistant.Config{
		ChatModel:     chatModel,
		Executor:      registry,
		Store:         repo.Conversation,
		MaxToolRounds: cfg.Assistant.MaxToolRounds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant service: %w", err)
	}

	fileSvc, err := file.NewServiceFromConfig(repo, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create file service: %w", err)
	}

	return &Services{
		Assistant:    assistantSvc,
		Conversation: conversation.NewService(repo.Conversation, selection),
		SOP:          sopSvc,
		Project:      projectSvc,
		Expense:      expenseSvc,
		Initiative:   initiativeSvc,
		CRM:          crmSvc,
		Workspace:    workspaceSvc,
		Auth:         auth.NewService(repo, &cfg.Auth),
		File:         fileSvc,
		Config:       cfg,
		Selection:    selection,
	}, nil
}

// newToolCallingChatModel 创建支持工具调用的 ChatModel
func newToolCallingChatModel(ctx context.Context, cfg *config.Config) (einomodel.ToolCallingChatModel, error) {
	aiCfg := cfg.AI

	var apiKey, baseURL, modelName string

	switch aiCfg.Provider {
	case "openai":
		apiKey = aiCfg.OpenAI.APIKey
		baseURL = aiCfg.OpenAI.BaseURL
		modelName = aiCfg.OpenAI.Model
	case "deepseek":
		apiKey = aiCfg.DeepSeek.APIKey
		baseURL = aiCfg.DeepSeek.BaseURL
		modelName = aiCfg.DeepSeek.Model
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", aiCfg.Provider)
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	temperature := float32(cfg.Assistant.Temperature)

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       modelName,
		Temperature: &temperature,
	})
}
