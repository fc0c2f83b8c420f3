package services

import (
	"context"
	"testing"
	"time"

	"github.com/marifyahya/test-backenddev/domain"
	"github.com/marifyahya/test-backenddev/internal/mocks"
)

// authTestDeps holds the mocks behind an AuthService under test
type authTestDeps struct {
	accountRepo *mocks.MockAccountRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
	audit       *mocks.MockAuditLogger
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T) (domain.AuthService, *authTestDeps) {
	t.Helper()

	deps := &authTestDeps{
		accountRepo: mocks.NewMockAccountRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
		audit:       mocks.NewMockAuditLogger(),
	}
	svc := NewAuthService(deps.accountRepo, deps.passwordSvc, deps.tokenSvc, deps.otpSvc, deps.audit, nil)
	return svc, deps
}

// createValidAccount creates a valid account entity for testing
func createValidAccount(t *testing.T) *domain.Account {
	t.Helper()

	return &domain.Account{
		ID:           "1",
		Email:        "test@example.com",
		PasswordHash: "hashed_password123",
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// findAccount returns a FindByEmail stub that only knows account
func findAccount(account *domain.Account) func(ctx context.Context, email string) (*domain.Account, error) {
	return func(ctx context.Context, email string) (*domain.Account, error) {
		if email == account.Email {
			return account, nil
		}
		return nil, domain.ErrUserNotFound
	}
}
