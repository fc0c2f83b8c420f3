package mocks

import (
	"context"

	"github.com/marifyahya/test-backenddev/domain"
)

// MockAccountRepository implements domain.AccountRepository interface for testing
type MockAccountRepository struct {
	CreateFunc      func(ctx context.Context, account *domain.Account) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Account, error)
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Account, error)
	SaveFunc        func(ctx context.Context, account *domain.Account) error
	ListFunc        func(ctx context.Context, emailQuery string) ([]*domain.Account, error)
	DeleteFunc      func(ctx context.Context, id string) error

	// Saved records every account passed to Save, in order
	Saved []domain.Account
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

// Create creates a new account
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	// Default behavior: success with a fixed id
	account.ID = "1"
	return nil
}

// FindByEmail finds an account by email
func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds an account by ID
func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Save persists an existing account
func (m *MockAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	snapshot := *account
	if account.OTP != nil {
		otp := *account.OTP
		snapshot.OTP = &otp
	}
	m.Saved = append(m.Saved, snapshot)

	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, account)
	}
	return nil
}

// List lists accounts matching emailQuery
func (m *MockAccountRepository) List(ctx context.Context, emailQuery string) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, emailQuery)
	}
	return []*domain.Account{}, nil
}

// Delete removes an account
func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
