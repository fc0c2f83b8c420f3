package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marifyahya/test-backenddev/domain"
	"github.com/redis/go-redis/v9"
)

// RedisBookRepository implements domain.BookRepository as a single Redis hash keyed by book id
type RedisBookRepository struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

// NewRedisBookRepository creates a new book repository
func NewRedisBookRepository(client *redis.Client, key string, timeout time.Duration) domain.BookRepository {
	return &RedisBookRepository{
		client:  client,
		key:     key,
		timeout: timeout,
	}
}

// List implements domain.BookRepository
func (r *RedisBookRepository) List(ctx context.Context) (map[string]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	entries, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, upstream(err)
	}

	books := make(map[string]*domain.Book, len(entries))
	for id, data := range entries {
		book, err := decodeBook(id, data)
		if err != nil {
			return nil, err
		}
		books[id] = book
	}
	return books, nil
}

// Get implements domain.BookRepository
func (r *RedisBookRepository) Get(ctx context.Context, id string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data, err := r.client.HGet(ctx, r.key, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrBookNotFound
		}
		return nil, upstream(err)
	}
	return decodeBook(id, data)
}

// Put implements domain.BookRepository
func (r *RedisBookRepository) Put(ctx context.Context, book *domain.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to marshal book: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.HSet(ctx, r.key, book.ID, data).Err(); err != nil {
		return upstream(err)
	}
	return nil
}

// Delete implements domain.BookRepository
func (r *RedisBookRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	removed, err := r.client.HDel(ctx, r.key, id).Result()
	if err != nil {
		return upstream(err)
	}
	if removed == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func decodeBook(id, data string) (*domain.Book, error) {
	var book domain.Book
	if err := json.Unmarshal([]byte(data), &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal book %s: %w", id, err)
	}
	book.ID = id
	return &book, nil
}
