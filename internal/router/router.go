// Package router 注册 HTTP 路由
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/handler"
	"github.com/opsdeck/opsdeck/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuthMiddleware(h.Services))

	// 健康检查
	r.GET("/health", h.System.Health)
	r.GET("/version", h.System.Version)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth 认证
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", middleware.RequireAuth(h.Services), h.Auth.Me)
			auth.POST("/change-password", middleware.RequireAuth(h.Services), h.Auth.ChangePassword)
		}

		// Assistant 助手对话
		v1.POST("/assistant/chat", h.Assistant.Chat)

		// Conversation 会话
		convs := v1.Group("/conversations")
		{
			convs.POST("", h.Conversation.Create)
			convs.GET("", h.Conversation.List)
			convs.GET("/search", h.Conversation.Search)
			convs.GET("/selected", h.Conversation.Selected)
			convs.POST("/archive-old", h.Conversation.ArchiveOld)
			convs.GET("/:id", h.Conversation.Get)
			convs.PATCH("/:id", h.Conversation.Update)
			convs.DELETE("/:id", h.Conversation.Delete)
			convs.POST("/:id/select", h.Conversation.Select)
			convs.GET("/:id/messages", h.Conversation.GetMessages)
		}

		// Message 消息
		msgs := v1.Group("/messages")
		{
			msgs.PATCH("/:id", h.Conversation.EditMessage)
			msgs.DELETE("/:id", h.Conversation.DeleteMessage)
		}

		// Workspace 工作台
		v1.GET("/context", h.Workspace.GetContext)

		// SOP 标准流程
		sops := v1.Group("/sops")
		{
			sops.POST("", h.SOP.Create)
			sops.GET("", h.SOP.List)
			sops.GET("/:id", h.SOP.Get)
		}

		// Project 项目
		projects := v1.Group("/projects")
		{
			projects.POST("", h.Project.Create)
			projects.GET("", h.Project.List)
			projects.GET("/:id", h.Project.Get)
			projects.POST("/:id/tasks", h.Project.AddTask)
		}

		// Expense 支出
		expenses := v1.Group("/expenses")
		{
			expenses.POST("", h.Expense.Create)
			expenses.GET("", h.Expense.List)
		}

		// Initiative 战略计划
		initiatives := v1.Group("/initiatives")
		{
			initiatives.POST("", h.Initiative.Create)
			initiatives.GET("", h.Initiative.List)
		}

		// CRM 客户关系
		contacts := v1.Group("/contacts")
		{
			contacts.POST("", h.CRM.CreateContact)
			contacts.GET("", h.CRM.ListContacts)
		}
		deals := v1.Group("/deals")
		{
			deals.POST("", h.CRM.CreateDeal)
			deals.GET("", h.CRM.ListDeals)
		}
		invoices := v1.Group("/invoices")
		{
			invoices.POST("", h.CRM.CreateInvoice)
			invoices.GET("", h.CRM.ListInvoices)
		}

		// File 附件
		files := v1.Group("/files")
		{
			files.POST("", h.File.Upload)
			files.GET("/:id", h.File.Download)
			files.DELETE("/:id", h.File.Delete)
		}
	}

	return r
}
