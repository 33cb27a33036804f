package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/config"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/dto"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/jwt"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/mailer"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{BaseURL: "http://localhost:8080"},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
			ResetTokenTTL:           30 * time.Minute,
		},
	}
}

func setupTestAuthService() (AuthService, *mockUserRepo) {
	cfg := testConfig()
	repo, userRepo, _, _, _ := newMockRepository()
	logger := zap.NewNop()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	mail := mailer.NewMailer(&cfg.Mail, logger)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, mail, logger)
	return svc, userRepo
}

func createTestUser(userRepo *mockUserRepo, id, name, email, role string, approved bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &model.User{
		UserID:       id,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Approved:     approved,
		BaseModel:    model.BaseModel{CreatedAt: time.Now()},
	}
	userRepo.users[id] = user
	return user
}

// ── Register 测试 ──

func TestAuthService_Register_StudentAutoApproved(t *testing.T) {
	svc, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "张三",
		Email:    "zhangsan@test.com",
		Password: "password123",
		Role:     model.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if !resp.Approved {
		t.Error("学生注册应自动通过审核")
	}
	if resp.Role != model.RoleStudent {
		t.Errorf("期望 role=student，实际=%s", resp.Role)
	}
}

func TestAuthService_Register_TeacherNeedsApproval(t *testing.T) {
	svc, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "王老师",
		Email:    "teacher@test.com",
		Password: "password123",
		Role:     model.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if resp.Approved {
		t.Error("教师注册应默认待审核")
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "uid-001", "张三", "zhangsan@test.com", model.RoleStudent, true)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "李四",
		Email:    "zhangsan@test.com",
		Password: "password123",
		Role:     model.RoleStudent,
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "uid-001", "张三", "zhangsan@test.com", model.RoleStudent, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@test.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("应返回 Token 对")
	}
	if resp.User.Name != "张三" {
		t.Errorf("期望用户名=张三，实际=%s", resp.User.Name)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "uid-001", "张三", "zhangsan@test.com", model.RoleStudent, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@test.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@test.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// 审核门禁：未通过审核的教师不能登录
func TestAuthService_Login_NotApproved(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "uid-002", "王老师", "teacher@test.com", model.RoleTeacher, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "teacher@test.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrAccountNotApproved) {
		t.Errorf("期望 ErrAccountNotApproved，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "uid-001", "张三", "zhangsan@test.com", model.RoleStudent, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@test.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("应返回新的 AccessToken")
	}
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "uid-001", "张三", "zhangsan@test.com", model.RoleStudent, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@test.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 用 access token 调刷新接口应被拒绝
	if _, err := svc.RefreshToken(context.Background(), login.AccessToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_UserDeleted(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "uid-001", "张三", "zhangsan@test.com", model.RoleStudent, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@test.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 管理员删除用户后会话必须快速失效
	delete(userRepo.users, "uid-001")
	if _, err := svc.RefreshToken(context.Background(), login.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

// ── GetCurrentUser 测试 ──

func TestAuthService_GetCurrentUser_MissingProfileFailsClosed(t *testing.T) {
	svc, _ := setupTestAuthService()

	// Token 有效但档案不存在：不得降级为匿名会话
	_, err := svc.GetCurrentUser(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ForgotPassword 测试 ──

func TestAuthService_ForgotPassword_RedisUnavailable(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "uid-001", "张三", "zhangsan@test.com", model.RoleStudent, true)

	// Redis 未接入时整体不可用，而不是静默成功
	err := svc.ForgotPassword(context.Background(), "zhangsan@test.com")
	if !errors.Is(err, ErrResetUnavailable) {
		t.Errorf("期望 ErrResetUnavailable，实际: %v", err)
	}
}
