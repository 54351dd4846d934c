package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"
)

// IBookRepository defines the contract for book catalog database
// operations.
type IBookRepository interface {
	CreateBook(book *model.Book) error
	GetBookByID(id int) (*model.Book, error)
	GetAllBooks() ([]*model.Book, error)
}

// BookRepository implements IBookRepository.
type BookRepository struct {
	DB *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{DB: db}
}

func (r *BookRepository) CreateBook(book *model.Book) error {
	log := logger.Log.WithField("title", book.Title)
	log.Info("Executing query to create a new book")

	query := `INSERT INTO books (title, author) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, book.Title, book.Author).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create book query")
		return err
	}
	return nil
}

func (r *BookRepository) GetBookByID(id int) (*model.Book, error) {
	book := &model.Book{}
	query := `SELECT id, title, author, created_at FROM books WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&book.ID, &book.Title, &book.Author, &book.CreatedAt)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *BookRepository) GetAllBooks() ([]*model.Book, error) {
	query := `SELECT id, title, author, created_at FROM books ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all books")
		return nil, err
	}
	defer rows.Close()

	// An empty catalog encodes as [] rather than null.
	books := []*model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan book row")
			return nil, err
		}
		books = append(books, &b)
	}
	return books, nil
}
