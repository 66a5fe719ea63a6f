package handler

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/opsdeck/opsdeck/internal/middleware"
	"github.com/opsdeck/opsdeck/internal/service"
	"github.com/opsdeck/opsdeck/internal/service/file"
)

// FileHandler 附件文件处理器
type FileHandler struct {
	svc *service.Services
}

// NewFileHandler 创建附件文件处理器
func NewFileHandler(svc *service.Services) *FileHandler {
	return &FileHandler{svc: svc}
}

// Upload 上传文件
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, err)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, err)
		return
	}
	defer src.Close()

	userID, _ := middleware.GetUserID(c)

	stored, err := h.svc.File.SaveFile(c.Request.Context(), &file.SaveRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      src,
		UploadedBy:  userID,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, stored)
}

// Download 下载文件
func (h *FileHandler) Download(c *gin.Context) {
	stored, reader, err := h.svc.File.GetFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "file not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stored.FileName))
	c.Header("Content-Type", stored.ContentType)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		_ = c.Error(err)
	}
}

// Delete 删除文件
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.svc.File.DeleteFile(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, nil)
}
