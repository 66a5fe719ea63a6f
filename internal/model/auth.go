package model

import "time"

// User 用户
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AuthToken 认证令牌记录
type AuthToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36" json:"user_id"`
	Token     string    `gorm:"type:text;index" json:"-"`
	TokenType string    `gorm:"size:20" json:"token_type"` // access_token, refresh_token
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// StoredFile 已存储文件
type StoredFile struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	Size        int64     `json:"size"`
	StoragePath string    `gorm:"size:512" json:"-"`
	StorageType string    `gorm:"size:20" json:"storage_type"` // local, minio
	UploadedBy  string    `gorm:"index;size:36" json:"uploaded_by,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string       { return "users" }
func (AuthToken) TableName() string  { return "auth_tokens" }
func (StoredFile) TableName() string { return "stored_files" }
