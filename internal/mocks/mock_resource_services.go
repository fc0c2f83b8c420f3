package mocks

import (
	"context"

	"github.com/marifyahya/test-backenddev/domain"
)

// MockAccountService implements domain.AccountService interface for testing
type MockAccountService struct {
	ListFunc        func(ctx context.Context, emailQuery string) ([]*domain.Account, error)
	GetFunc         func(ctx context.Context, id string) (*domain.Account, error)
	CreateFunc      func(ctx context.Context, email, password string) (*domain.Account, error)
	UpdateEmailFunc func(ctx context.Context, id, email string) (*domain.Account, error)
	DeleteFunc      func(ctx context.Context, id string) error
}

// NewMockAccountService creates a new MockAccountService with default behaviors
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

func (m *MockAccountService) List(ctx context.Context, emailQuery string) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, emailQuery)
	}
	return []*domain.Account{}, nil
}

func (m *MockAccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAccountService) Create(ctx context.Context, email, password string) (*domain.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, email, password)
	}
	return &domain.Account{ID: "1", Email: email}, nil
}

func (m *MockAccountService) UpdateEmail(ctx context.Context, id, email string) (*domain.Account, error) {
	if m.UpdateEmailFunc != nil {
		return m.UpdateEmailFunc(ctx, id, email)
	}
	return &domain.Account{ID: id, Email: email}, nil
}

func (m *MockAccountService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockBookService implements domain.BookService interface for testing
type MockBookService struct {
	ListFunc   func(ctx context.Context) (map[string]*domain.Book, error)
	GetFunc    func(ctx context.Context, id string) (*domain.Book, error)
	CreateFunc func(ctx context.Context, name string, price int64) (map[string]*domain.Book, error)
	UpdateFunc func(ctx context.Context, id, name string, price int64) (*domain.Book, error)
	DeleteFunc func(ctx context.Context, id string) error
}

// NewMockBookService creates a new MockBookService with default behaviors
func NewMockBookService() *MockBookService {
	return &MockBookService{}
}

func (m *MockBookService) List(ctx context.Context) (map[string]*domain.Book, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return map[string]*domain.Book{}, nil
}

func (m *MockBookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrBookNotFound
}

func (m *MockBookService) Create(ctx context.Context, name string, price int64) (map[string]*domain.Book, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, price)
	}
	return map[string]*domain.Book{"b1": {ID: "b1", Name: name, Price: price}}, nil
}

func (m *MockBookService) Update(ctx context.Context, id, name string, price int64) (*domain.Book, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, name, price)
	}
	return &domain.Book{ID: id, Name: name, Price: price}, nil
}

func (m *MockBookService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockBillingService implements domain.BillingService interface for testing
type MockBillingService struct {
	DenominationsFunc func(ctx context.Context) ([]int, error)
}

// NewMockBillingService creates a new MockBillingService with default behaviors
func NewMockBillingService() *MockBillingService {
	return &MockBillingService{}
}

func (m *MockBillingService) Denominations(ctx context.Context) ([]int, error) {
	if m.DenominationsFunc != nil {
		return m.DenominationsFunc(ctx)
	}
	return []int{}, nil
}

// Compile-time interface compliance verification
var (
	_ domain.AccountService = (*MockAccountService)(nil)
	_ domain.BookService    = (*MockBookService)(nil)
	_ domain.BillingService = (*MockBillingService)(nil)
)
