package mocks

import (
	"context"

	"github.com/marifyahya/test-backenddev/domain"
)

// MockBookRepository implements domain.BookRepository interface for testing
type MockBookRepository struct {
	ListFunc   func(ctx context.Context) (map[string]*domain.Book, error)
	GetFunc    func(ctx context.Context, id string) (*domain.Book, error)
	PutFunc    func(ctx context.Context, book *domain.Book) error
	DeleteFunc func(ctx context.Context, id string) error
}

// NewMockBookRepository creates a new MockBookRepository with default behaviors
func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{}
}

// List returns every book keyed by id
func (m *MockBookRepository) List(ctx context.Context) (map[string]*domain.Book, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return map[string]*domain.Book{}, nil
}

// Get returns one book
func (m *MockBookRepository) Get(ctx context.Context, id string) (*domain.Book, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrBookNotFound
}

// Put creates or replaces a book
func (m *MockBookRepository) Put(ctx context.Context, book *domain.Book) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, book)
	}
	return nil
}

// Delete removes a book
func (m *MockBookRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return domain.ErrBookNotFound
}

// Compile-time interface compliance verification
var _ domain.BookRepository = (*MockBookRepository)(nil)
