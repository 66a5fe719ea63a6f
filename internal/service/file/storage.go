// Package file 提供消息附件的存储与访问
package file

import (
	"context"
	"io"
)

// Storage 文件存储接口
type Storage interface {
	// Save 保存文件，返回存储路径
	Save(ctx context.Context, req *SaveRequest) (string, error)
	// Get 获取文件内容
	Get(ctx context.Context, storagePath string) (io.ReadCloser, error)
	// Delete 删除文件
	Delete(ctx context.Context, storagePath string) error
	// URL 返回文件的访问地址
	URL(storagePath string) string
}

// SaveRequest 保存文件请求
type SaveRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
	UploadedBy  string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeMinIO StorageType = "minio"
)
