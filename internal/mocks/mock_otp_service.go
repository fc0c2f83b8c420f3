package mocks

import (
	"context"

	"github.com/marifyahya/test-backenddev/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc   func(ctx context.Context, account *domain.Account) (int, error)
	ConsumeFunc func(ctx context.Context, account *domain.Account, code int, newPassword string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue creates and sends a challenge
func (m *MockOTPService) Issue(ctx context.Context, account *domain.Account) (int, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, account)
	}
	return 12345, nil
}

// Consume checks a code and replaces the password
func (m *MockOTPService) Consume(ctx context.Context, account *domain.Account, code int, newPassword string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, account, code, newPassword)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
