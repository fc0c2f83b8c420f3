package mocks

import (
	"context"
	"time"

	"github.com/marifyahya/test-backenddev/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, email, password string) error
	LoginFunc          func(ctx context.Context, email, password string) (*domain.TokenEnvelope, error)
	RefreshFunc        func(ctx context.Context, account *domain.Account) (*domain.TokenEnvelope, error)
	LogoutFunc         func(ctx context.Context, account *domain.Account) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, email, password, confirmation string, code int) error
	ProfileFunc        func(ctx context.Context, accountID string) (*domain.Account, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func mockEnvelope() *domain.TokenEnvelope {
	return &domain.TokenEnvelope{
		AccessToken: "mock_access_token",
		TokenType:   "bearer",
		ExpiresIn:   time.Now().Add(6 * time.Hour).Unix(),
	}
}

// Register registers a new account
func (m *MockAuthService) Register(ctx context.Context, email, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password)
	}
	return nil
}

// Login authenticates with email and password
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.TokenEnvelope, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return mockEnvelope(), nil
}

// Refresh issues a fresh token for the account
func (m *MockAuthService) Refresh(ctx context.Context, account *domain.Account) (*domain.TokenEnvelope, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, account)
	}
	return mockEnvelope(), nil
}

// Logout clears the active token
func (m *MockAuthService) Logout(ctx context.Context, account *domain.Account) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, account)
	}
	return nil
}

// ForgotPassword starts a password reset
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

// ResetPassword completes a password reset
func (m *MockAuthService) ResetPassword(ctx context.Context, email, password, confirmation string, code int) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, password, confirmation, code)
	}
	return nil
}

// Profile loads the account
func (m *MockAuthService) Profile(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, accountID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
