// file: repository/record_repository_test.go

package repository

import (
	"go-publisher-api/logger"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var recordQueryPattern = regexp.QuoteMeta(`
		SELECT r.id, r.ledger_id, r.record_date, r.category, r.description, r.amount, r.created_at,
		       d.id, d.item, d.value
		FROM ledger_records r
		LEFT JOIN record_details d ON d.record_id = r.id
		WHERE r.ledger_id = $1
		  AND ($2::date IS NULL OR r.record_date >= $2)
		  AND ($3::date IS NULL OR r.record_date <= $3)
		ORDER BY r.record_date ASC, r.id ASC, d.id ASC`)

func recordColumns() []string {
	return []string{
		"id", "ledger_id", "record_date", "category", "description", "amount", "created_at",
		"d_id", "d_item", "d_value",
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)
	return parsed
}

func TestRecordRepository_GetRecordsByLedgerID(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewRecordRepository(db)
	now := time.Now()

	t.Run("groups detail rows under their record", func(t *testing.T) {
		rows := sqlmock.NewRows(recordColumns()).
			AddRow(1, 7, mustDate(t, "2024-01-05"), "paper", "A4 stock", "120.00", now, 10, "supplier", "Northside Paper Co.").
			AddRow(1, 7, mustDate(t, "2024-01-05"), "paper", "A4 stock", "120.00", now, 11, "invoice", "INV-204").
			AddRow(2, 7, mustDate(t, "2024-01-08"), "ink", "Black ink", "40.50", now, nil, nil, nil)

		dbMock.ExpectQuery(recordQueryPattern).WithArgs(7, nil, nil).WillReturnRows(rows)

		records, err := repo.GetRecordsByLedgerID(7, nil, nil)

		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Len(t, records[0].Details, 2)
		assert.Equal(t, "supplier", records[0].Details[0].Item)
		assert.Equal(t, 1, records[0].Details[0].RecordID)
		assert.Empty(t, records[1].Details)
		assert.NotNil(t, records[1].Details)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("passes both inclusive bounds to the query", func(t *testing.T) {
		start := mustDate(t, "2024-01-01")
		end := mustDate(t, "2024-01-31")

		rows := sqlmock.NewRows(recordColumns()).
			AddRow(1, 7, mustDate(t, "2024-01-05"), "paper", "A4 stock", "120.00", now, nil, nil, nil)

		dbMock.ExpectQuery(recordQueryPattern).WithArgs(7, start, end).WillReturnRows(rows)

		records, err := repo.GetRecordsByLedgerID(7, &start, &end)

		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("no matches yields an empty slice, never nil", func(t *testing.T) {
		dbMock.ExpectQuery(recordQueryPattern).WithArgs(7, nil, nil).
			WillReturnRows(sqlmock.NewRows(recordColumns()))

		records, err := repo.GetRecordsByLedgerID(7, nil, nil)

		assert.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
