// Package auth 提供用户注册、登录与令牌管理
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
)

// Service 认证服务
type Service struct {
	repo       *repository.Repositories
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService 创建认证服务
// 未配置密钥时生成随机密钥，重启后已签发的令牌全部失效
func NewService(repo *repository.Repositories, cfg *config.AuthConfig) *Service {
	secret := cfg.JWTSecret
	if secret == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			panic(fmt.Sprintf("failed to generate jwt secret: %v", err))
		}
		secret = base64.StdEncoding.EncodeToString(raw)
	}

	accessTTL := time.Duration(cfg.AccessTokenTTL) * time.Hour
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	refreshTTL := time.Duration(cfg.RefreshTokenTTL) * time.Hour
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &Service{
		repo:       repo,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenPair 一次签发的令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User *model.User `json:"user"`
	TokenPair
}

// Register 注册用户
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	if existing, _ := s.repo.Auth.GetUserByEmail(req.Email); existing != nil {
		return nil, errors.New("user with this email already exists")
	}
	if existing, _ := s.repo.Auth.GetUserByUsername(req.Username); existing != nil {
		return nil, errors.New("user with this username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.repo.Auth.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login 用户登录
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.Auth.GetUserByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !user.IsActive {
		return nil, errors.New("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &LoginResponse{User: user, TokenPair: *pair}, nil
}

// ValidateToken 验证访问令牌并返回对应用户
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if t, _ := claims["type"].(string); t != "access" {
		return nil, errors.New("not an access token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid user id in token")
	}

	record, err := s.repo.Auth.GetTokenByValue(tokenString)
	if err != nil || record == nil || record.IsRevoked {
		return nil, errors.New("token is revoked")
	}

	return s.repo.Auth.GetUserByID(userID)
}

// RefreshToken 用刷新令牌换取新令牌对，旧的刷新令牌作废
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if t, _ := claims["type"].(string); t != "refresh" {
		return nil, errors.New("not a refresh token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid user id in token")
	}

	record, err := s.repo.Auth.GetTokenByValue(refreshToken)
	if err != nil || record == nil || record.IsRevoked {
		return nil, errors.New("refresh token is revoked")
	}

	user, err := s.repo.Auth.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	_ = s.repo.Auth.RevokeToken(record.ID)

	return s.issueTokens(user)
}

// RevokeToken 撤销令牌
func (s *Service) RevokeToken(ctx context.Context, tokenString string) error {
	record, err := s.repo.Auth.GetTokenByValue(tokenString)
	if err != nil {
		return err
	}
	return s.repo.Auth.RevokeToken(record.ID)
}

// ChangePassword 修改密码
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.Auth.GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashed)
	return s.repo.Auth.UpdateUser(user)
}

func (s *Service) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// issueTokens 签发访问令牌和刷新令牌并落库
func (s *Service) issueTokens(user *model.User) (*TokenPair, error) {
	now := time.Now()

	access, err := s.signToken(jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"type":    "access",
		"iat":     now.Unix(),
		"exp":     now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	refresh, err := s.signToken(jwt.MapClaims{
		"user_id": user.ID,
		"type":    "refresh",
		"iat":     now.Unix(),
		"exp":     now.Add(s.refreshTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	_ = s.repo.Auth.CreateToken(&model.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     access,
		TokenType: "access_token",
		ExpiresAt: now.Add(s.accessTTL),
	})
	_ = s.repo.Auth.CreateToken(&model.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     refresh,
		TokenType: "refresh_token",
		ExpiresAt: now.Add(s.refreshTTL),
	})

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) signToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
