// file: service/book_service.go

package service

import (
	"context"
	"encoding/json"
	"go-publisher-api/model"
	"go-publisher-api/repository"
	"time"
)

// bookCacheKey holds the cached catalog listing. The catalog changes
// rarely, so a short TTL plus invalidation on create keeps it fresh.
const bookCacheKey = "books:all"

// BookService serves the book catalog with a cache-aside strategy over
// Redis.
type BookService struct {
	repo  repository.IBookRepository
	cache ICacheClient
}

func NewBookService(repo repository.IBookRepository, cache ICacheClient) *BookService {
	return &BookService{
		repo:  repo,
		cache: cache,
	}
}

// CreateBook adds a title to the catalog and invalidates the catalog
// cache.
func (s *BookService) CreateBook(title, author string) (*model.Book, error) {
	book := &model.Book{
		Title:  title,
		Author: author,
	}
	if err := s.repo.CreateBook(book); err != nil {
		return nil, err
	}

	s.cache.Del(context.Background(), bookCacheKey)

	return book, nil
}

// ListBooks lists the catalog, utilizing a cache-aside strategy.
func (s *BookService) ListBooks() ([]*model.Book, error) {
	ctx := context.Background()

	// 1. Try to get data from Redis.
	cachedBooks, err := s.cache.Get(ctx, bookCacheKey).Result()
	if err == nil {
		// Cache hit.
		var books []*model.Book
		if err := json.Unmarshal([]byte(cachedBooks), &books); err == nil {
			return books, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	books, err := s.repo.GetAllBooks()
	if err != nil {
		return nil, err
	}

	// 3. Store the result in Redis for future requests.
	data, err := json.Marshal(books)
	if err == nil {
		s.cache.Set(ctx, bookCacheKey, data, 10*time.Minute)
	}

	return books, nil
}
