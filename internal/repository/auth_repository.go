package repository

import (
	"github.com/opsdeck/opsdeck/internal/model"
	"gorm.io/gorm"
)

// AuthRepository 认证数据访问
type AuthRepository struct {
	db *gorm.DB
}

// NewAuthRepository 创建认证仓库
func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// CreateUser 创建用户
func (r *AuthRepository) CreateUser(user *model.User) error {
	return r.db.Create(user).Error
}

// GetUserByID 按 ID 获取用户
func (r *AuthRepository) GetUserByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 按邮箱获取用户
func (r *AuthRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 按用户名获取用户
func (r *AuthRepository) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser 更新用户
func (r *AuthRepository) UpdateUser(user *model.User) error {
	return r.db.Save(user).Error
}

// CreateToken 存储令牌记录
func (r *AuthRepository) CreateToken(token *model.AuthToken) error {
	return r.db.Create(token).Error
}

// GetTokenByValue 按令牌值获取记录
func (r *AuthRepository) GetTokenByValue(token string) (*model.AuthToken, error) {
	var record model.AuthToken
	err := r.db.Where("token = ?", token).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// RevokeToken 撤销令牌
func (r *AuthRepository) RevokeToken(id string) error {
	return r.db.Model(&model.AuthToken{}).Where("id = ?", id).Update("is_revoked", true).Error
}
