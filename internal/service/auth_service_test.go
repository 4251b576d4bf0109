package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"school-hub/backend/config"
	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/model"
	"school-hub/backend/pkg/jwt"
)

// ── 测试辅助 ──

type fakeBlacklist struct {
	revoked map[string]time.Duration
	err     error
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: map[string]time.Duration{}}
}

func (b *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if b.err != nil {
		return b.err
	}
	b.revoked[jti] = ttl
	return nil
}

func (b *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := b.revoked[jti]
	return ok, nil
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-for-unit-testing-2026",
		Issuer:          "school-hub-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
}

func setupTestAuthService() (AuthService, *mocks, *fakeBlacklist, *jwt.Manager) {
	repo, m := newMockRepository()
	bl := newFakeBlacklist()
	mgr := newTestJWT()
	return NewAuthService(repo, mgr, bl, zap.NewNop()), m, bl, mgr
}

func createTestAccount(m *mocks, id, username, password, role string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.account.accounts[id] = &model.Account{ID: id, Username: username, PasswordHash: string(hash), Role: role}
}

// ── 登录 ──

func TestLogin_Success(t *testing.T) {
	svc, m, _, mgr := setupTestAuthService()
	createTestAccount(m, "t-1", "teacher1", "password123", model.RoleTeacher)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "teacher1", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
	if result.User.Role != model.RoleTeacher {
		t.Errorf("期望角色 teacher，实际=%s", result.User.Role)
	}

	claims, err := mgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 无法解析: %v", err)
	}
	if claims.UserID != "t-1" || claims.Metadata.Role != model.RoleTeacher {
		t.Errorf("身份声明错误: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	createTestAccount(m, "t-1", "teacher1", "password123", model.RoleTeacher)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "teacher1", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── 刷新 ──

func TestRefresh_RotatesToken(t *testing.T) {
	svc, m, bl, mgr := setupTestAuthService()
	createTestAccount(m, "s-1", "student1", "password123", model.RoleStudent)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "student1", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	old, _ := mgr.ParseToken(login.RefreshToken)

	result, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("新 AccessToken 不应为空")
	}
	if _, ok := bl.revoked[old.ID]; !ok {
		t.Error("旧 RefreshToken 应被吊销")
	}

	// 再次使用旧 Token 应失败
	_, err = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("期望 ErrInvalidToken，实际: %v", err)
	}
}

func TestRefresh_UsesCurrentRole(t *testing.T) {
	svc, m, _, mgr := setupTestAuthService()
	createTestAccount(m, "u-1", "user1", "password123", model.RoleTeacher)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Username: "user1", Password: "password123"})
	m.account.accounts["u-1"].Role = model.RoleAdmin

	result, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	claims, _ := mgr.ParseToken(result.AccessToken)
	if claims.Metadata.Role != model.RoleAdmin {
		t.Errorf("角色应以账号表为准，实际=%s", claims.Metadata.Role)
	}
}

func TestRefresh_AccessTokenNotAllowed(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	createTestAccount(m, "u-1", "user1", "password123", model.RoleParent)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Username: "user1", Password: "password123"})
	_, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("期望 ErrInvalidToken（access token 不能用于刷新），实际: %v", err)
	}
}

func TestRefresh_Garbage(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "invalid.token.string"})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("期望 ErrInvalidToken，实际: %v", err)
	}
}

// ── 登出 ──

func TestLogout_BlacklistsJTI(t *testing.T) {
	svc, m, bl, mgr := setupTestAuthService()
	createTestAccount(m, "u-1", "user1", "password123", model.RoleAdmin)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Username: "user1", Password: "password123"})
	claims, _ := mgr.ParseToken(login.AccessToken)

	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	ttl, ok := bl.revoked[claims.ID]
	if !ok {
		t.Fatal("jti 应写入黑名单")
	}
	if ttl <= 0 || ttl > 15*time.Minute {
		t.Errorf("黑名单 TTL 应为 Token 剩余有效期，实际=%v", ttl)
	}
}

func TestLogout_WithoutBlacklist(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewAuthService(repo, newTestJWT(), nil, zap.NewNop())

	if err := svc.Logout(context.Background(), &jwt.Claims{}); err != nil {
		t.Errorf("无黑名单时登出应直接成功: %v", err)
	}
}

// ── 当前身份 / 修改密码 ──

func TestMe_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	if _, err := svc.Me(context.Background(), "missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("期望 ErrAccountNotFound，实际: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, m, _, _ := setupTestAuthService()
	createTestAccount(m, "u-1", "user1", "password123", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), "u-1", &dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newpassword456"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("期望 ErrWrongPassword，实际: %v", err)
	}

	err = svc.ChangePassword(context.Background(), "u-1", &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "newpassword456"})
	if err != nil {
		t.Fatalf("修改密码应成功: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "user1", Password: "newpassword456"}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}
