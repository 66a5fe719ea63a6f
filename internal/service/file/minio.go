package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/opsdeck/opsdeck/internal/config"
)

// MinIOStorage MinIO 对象存储
type MinIOStorage struct {
	client     *minio.Client
	bucketName string
	urlPrefix  string
}

// NewMinIOStorage 创建 MinIO 存储，bucket 不存在时自动创建
func NewMinIOStorage(cfg *config.MinIOConfig, urlPrefix string) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if urlPrefix == "" {
		urlPrefix = fmt.Sprintf("%s/%s", cfg.Endpoint, cfg.BucketName)
	}

	return &MinIOStorage{
		client:     client,
		bucketName: cfg.BucketName,
		urlPrefix:  strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Save 上传文件到 MinIO
func (s *MinIOStorage) Save(ctx context.Context, req *SaveRequest) (string, error) {
	ext := filepath.Ext(req.FileName)
	if ext == "" {
		ext = extensionByContentType(req.ContentType)
	}
	owner := req.UploadedBy
	if owner == "" {
		owner = "shared"
	}
	objectName := fmt.Sprintf("%s/%s%s", owner, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucketName, objectName, req.Reader, req.Size, minio.PutObjectOptions{
		ContentType: req.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return objectName, nil
}

// Get 获取文件内容
func (s *MinIOStorage) Get(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucketName, storagePath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return object, nil
}

// Delete 删除文件
func (s *MinIOStorage) Delete(ctx context.Context, storagePath string) error {
	if err := s.client.RemoveObject(ctx, s.bucketName, storagePath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL 返回文件的访问地址
func (s *MinIOStorage) URL(storagePath string) string {
	return fmt.Sprintf("%s/%s", s.urlPrefix, storagePath)
}
