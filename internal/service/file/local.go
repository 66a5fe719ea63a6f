package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage 本地文件存储
type LocalStorage struct {
	basePath  string
	urlPrefix string
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Save 保存文件到本地磁盘
// 路径格式: {basePath}/{uploadedBy}/{uuid}{ext}
func (s *LocalStorage) Save(ctx context.Context, req *SaveRequest) (string, error) {
	ext := filepath.Ext(req.FileName)
	if ext == "" {
		ext = extensionByContentType(req.ContentType)
	}
	owner := req.UploadedBy
	if owner == "" {
		owner = "shared"
	}
	relativePath := fmt.Sprintf("%s/%s%s", owner, uuid.New().String(), ext)
	fullPath := filepath.Join(s.basePath, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, req.Reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return relativePath, nil
}

// Get 获取文件内容
func (s *LocalStorage) Get(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.basePath, storagePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete 删除文件
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	if err := os.Remove(filepath.Join(s.basePath, storagePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL 返回文件的访问地址
func (s *LocalStorage) URL(storagePath string) string {
	return fmt.Sprintf("%s/%s", s.urlPrefix, storagePath)
}

// extensionByContentType 根据内容类型返回扩展名
func extensionByContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "application/pdf":
		return ".pdf"
	case "text/plain", "text/csv":
		return ".txt"
	case "text/markdown":
		return ".md"
	case "application/json":
		return ".json"
	default:
		return ".bin"
	}
}
