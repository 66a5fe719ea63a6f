package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/database"
)

// SystemHandler 系统状态处理器
type SystemHandler struct {
	db    *database.DB
	redis *redis.Client
	cfg   *config.Config
}

// NewSystemHandler 创建系统状态处理器
func NewSystemHandler(db *database.DB, redisClient *redis.Client, cfg *config.Config) *SystemHandler {
	return &SystemHandler{db: db, redis: redisClient, cfg: cfg}
}

// Health 健康检查
func (h *SystemHandler) Health(c *gin.Context) {
	status := gin.H{
		"status":   "ok",
		"database": "ok",
		"redis":    "ok",
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	}
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
		}
	} else {
		status["redis"] = "disabled"
	}

	success(c, status)
}

// Version 版本信息
func (h *SystemHandler) Version(c *gin.Context) {
	success(c, gin.H{
		"name":        h.cfg.App.Name,
		"version":     h.cfg.App.Version,
		"environment": h.cfg.App.Environment,
	})
}
