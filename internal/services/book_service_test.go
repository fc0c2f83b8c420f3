package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/marifyahya/test-backenddev/domain"
	"github.com/marifyahya/test-backenddev/internal/infrastructure/repositories"
	"github.com/marifyahya/test-backenddev/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBookService(t *testing.T) domain.BookService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewBookService(repositories.NewRedisBookRepository(client, "books", time.Second))
}

func TestBookServiceImpl_CreateReturnsCollection(t *testing.T) {
	svc := newRedisBookService(t)
	ctx := context.Background()

	books, err := svc.Create(ctx, "Go in Action", 150000)
	require.NoError(t, err)
	require.Len(t, books, 1)

	books, err = svc.Create(ctx, "Concurrency in Go", 200000)
	require.NoError(t, err)
	require.Len(t, books, 2)

	for id, book := range books {
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "book id should be a uuid")
		assert.Equal(t, id, book.ID)
	}
}

func TestBookServiceImpl_Update(t *testing.T) {
	svc := newRedisBookService(t)
	ctx := context.Background()

	books, err := svc.Create(ctx, "Draft", 1)
	require.NoError(t, err)
	var id string
	for k := range books {
		id = k
	}

	updated, err := svc.Update(ctx, id, "Final", 99)
	require.NoError(t, err)
	assert.Equal(t, &domain.Book{ID: id, Name: "Final", Price: 99}, updated)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Name)

	_, err = svc.Update(ctx, "missing", "x", 1)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBookServiceImpl_Delete(t *testing.T) {
	svc := newRedisBookService(t)
	ctx := context.Background()

	books, err := svc.Create(ctx, "Temp", 1)
	require.NoError(t, err)
	for id := range books {
		require.NoError(t, svc.Delete(ctx, id))
		assert.ErrorIs(t, svc.Delete(ctx, id), domain.ErrBookNotFound)
	}

	remaining, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestBookServiceImpl_CreateStoreFailure(t *testing.T) {
	repo := mocks.NewMockBookRepository()
	repo.PutFunc = func(ctx context.Context, book *domain.Book) error {
		return domain.ErrUpstream
	}
	svc := NewBookService(repo)

	books, err := svc.Create(context.Background(), "Go", 1)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Nil(t, books)
}
