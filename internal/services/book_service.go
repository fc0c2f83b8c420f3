package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/marifyahya/test-backenddev/domain"
)

// BookServiceImpl implements domain.BookService
type BookServiceImpl struct {
	bookRepo domain.BookRepository
	newID    func() string
}

// NewBookService creates a new book service
func NewBookService(bookRepo domain.BookRepository) domain.BookService {
	return &BookServiceImpl{
		bookRepo: bookRepo,
		newID:    uuid.NewString,
	}
}

// List implements domain.BookService
func (s *BookServiceImpl) List(ctx context.Context) (map[string]*domain.Book, error) {
	return s.bookRepo.List(ctx)
}

// Get implements domain.BookService
func (s *BookServiceImpl) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.bookRepo.Get(ctx, id)
}

// Create implements domain.BookService and returns the full collection afterwards
func (s *BookServiceImpl) Create(ctx context.Context, name string, price int64) (map[string]*domain.Book, error) {
	book := &domain.Book{ID: s.newID(), Name: name, Price: price}
	if err := s.bookRepo.Put(ctx, book); err != nil {
		return nil, err
	}
	return s.bookRepo.List(ctx)
}

// Update implements domain.BookService
func (s *BookServiceImpl) Update(ctx context.Context, id, name string, price int64) (*domain.Book, error) {
	book, err := s.bookRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Name = name
	book.Price = price
	if err := s.bookRepo.Put(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete implements domain.BookService
func (s *BookServiceImpl) Delete(ctx context.Context, id string) error {
	return s.bookRepo.Delete(ctx, id)
}
