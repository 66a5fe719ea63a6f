package file

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
)

// Service 附件文件服务
type Service struct {
	repo        *repository.Repositories
	storage     Storage
	storageType StorageType
}

// NewService 创建文件服务
func NewService(repo *repository.Repositories, storage Storage, storageType StorageType) *Service {
	return &Service{
		repo:        repo,
		storage:     storage,
		storageType: storageType,
	}
}

// NewServiceFromConfig 根据配置选择存储后端
func NewServiceFromConfig(repo *repository.Repositories, cfg *config.StorageConfig) (*Service, error) {
	switch StorageType(cfg.Type) {
	case StorageTypeLocal, "":
		storage, err := NewLocalStorage(cfg.LocalPath, cfg.URLPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		return NewService(repo, storage, StorageTypeLocal), nil

	case StorageTypeMinIO:
		storage, err := NewMinIOStorage(&cfg.MinIO, cfg.URLPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to create minio storage: %w", err)
		}
		return NewService(repo, storage, StorageTypeMinIO), nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// SaveFile 保存文件并落库
func (s *Service) SaveFile(ctx context.Context, req *SaveRequest) (*model.StoredFile, error) {
	storagePath, err := s.storage.Save(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	stored := &model.StoredFile{
		ID:          uuid.New().String(),
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
		StoragePath: storagePath,
		StorageType: string(s.storageType),
		UploadedBy:  req.UploadedBy,
	}

	if err := s.repo.File.Create(stored); err != nil {
		// 落库失败时回收已保存的文件
		_ = s.storage.Delete(ctx, storagePath)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return stored, nil
}

// GetFile 获取文件记录与内容
func (s *Service) GetFile(ctx context.Context, id string) (*model.StoredFile, io.ReadCloser, error) {
	stored, err := s.repo.File.GetByID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("file not found: %w", err)
	}

	reader, err := s.storage.Get(ctx, stored.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get file content: %w", err)
	}

	return stored, reader, nil
}

// DeleteFile 删除文件及其记录
func (s *Service) DeleteFile(ctx context.Context, id string) error {
	stored, err := s.repo.File.GetByID(id)
	if err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	if err := s.storage.Delete(ctx, stored.StoragePath); err != nil {
		return fmt.Errorf("failed to delete file from storage: %w", err)
	}

	return s.repo.File.Delete(id)
}

// GetFileURL 返回文件的访问地址
func (s *Service) GetFileURL(id string) (string, error) {
	stored, err := s.repo.File.GetByID(id)
	if err != nil {
		return "", fmt.Errorf("file not found: %w", err)
	}
	return s.storage.URL(stored.StoragePath), nil
}
