// file: repository/book_repository_test.go

package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var allBooksPattern = regexp.QuoteMeta(`SELECT id, title, author, created_at FROM books ORDER BY id`)

func TestBookRepository_GetAllBooks(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepository(db)

	t.Run("returns the catalog in id order", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "author", "created_at"}).
			AddRow(1, "Field Guide to Rivers", "M. Ostrander", time.Now()).
			AddRow(2, "Letterpress at Home", "J. Quist", time.Now())

		dbMock.ExpectQuery(allBooksPattern).WillReturnRows(rows)

		books, err := repo.GetAllBooks()

		assert.NoError(t, err)
		assert.Len(t, books, 2)
		assert.Equal(t, "Field Guide to Rivers", books[0].Title)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("an empty catalog yields an empty slice, never nil", func(t *testing.T) {
		dbMock.ExpectQuery(allBooksPattern).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "created_at"}))

		books, err := repo.GetAllBooks()

		assert.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
