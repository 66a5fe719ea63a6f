package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Response 统一响应格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// badRequest 请求参数错误响应
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
}

// notFound 资源不存在响应
func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Code: -1, Message: msg})
}

// errorResponse 错误响应
func errorResponse(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Response{Code: -1, Message: err.Error()})
}

// getPagination 获取分页参数
func getPagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}
