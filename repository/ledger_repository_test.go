// file: repository/ledger_repository_test.go

package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var ledgersByUserPattern = regexp.QuoteMeta(`
		SELECT l.id, l.name, l.created_at
		FROM ledgers l
		JOIN ledger_members m ON m.ledger_id = l.id
		WHERE m.user_id = $1
		ORDER BY l.id`)

func TestLedgerRepository_GetLedgersByUserID(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewLedgerRepository(db)

	t.Run("returns the user's ledgers", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(7, "print shop ledger", time.Now()).
			AddRow(8, "bindery ledger", time.Now())

		dbMock.ExpectQuery(ledgersByUserPattern).WithArgs(4).WillReturnRows(rows)

		ledgers, err := repo.GetLedgersByUserID(4)

		assert.NoError(t, err)
		assert.Len(t, ledgers, 2)
		assert.Equal(t, "print shop ledger", ledgers[0].Name)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("no memberships yields an empty slice, never nil", func(t *testing.T) {
		dbMock.ExpectQuery(ledgersByUserPattern).WithArgs(4).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

		ledgers, err := repo.GetLedgersByUserID(4)

		assert.NoError(t, err)
		assert.NotNil(t, ledgers)
		assert.Empty(t, ledgers)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
