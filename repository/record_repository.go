package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"time"

	"github.com/sirupsen/logrus"
)

// IRecordRepository defines the contract for ledger record database
// operations.
type IRecordRepository interface {
	GetRecordsByLedgerID(ledgerID int, startDate, endDate *time.Time) ([]*model.LedgerRecord, error)
	CreateRecord(tx *sql.Tx, record *model.LedgerRecord) error
}

// RecordRepository implements IRecordRepository.
type RecordRepository struct {
	DB *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{DB: db}
}

// GetRecordsByLedgerID retrieves the records of a ledger together with
// their detail rows. Either date bound may be nil; present bounds are
// inclusive. Rows come back ordered by record date ascending, then record
// id ascending, so repeated reads of an unchanged ledger return the same
// sequence.
func (r *RecordRepository) GetRecordsByLedgerID(ledgerID int, startDate, endDate *time.Time) ([]*model.LedgerRecord, error) {
	log := logger.Log.WithField("ledger_id", ledgerID)
	log.Info("Executing query to get records by ledger ID")

	query := `
		SELECT r.id, r.ledger_id, r.record_date, r.category, r.description, r.amount, r.created_at,
		       d.id, d.item, d.value
		FROM ledger_records r
		LEFT JOIN record_details d ON d.record_id = r.id
		WHERE r.ledger_id = $1
		  AND ($2::date IS NULL OR r.record_date >= $2)
		  AND ($3::date IS NULL OR r.record_date <= $3)
		ORDER BY r.record_date ASC, r.id ASC, d.id ASC`

	rows, err := r.DB.Query(query, ledgerID, startDate, endDate)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for records by ledger ID")
		return nil, err
	}
	defer rows.Close()

	// Never return nil for "no records": callers must be able to tell an
	// empty ledger apart from a denied request, and the repository's part
	// of that contract is an empty slice.
	records := []*model.LedgerRecord{}
	var current *model.LedgerRecord

	for rows.Next() {
		var rec model.LedgerRecord
		var detailID sql.NullInt64
		var detailItem, detailValue sql.NullString

		if err := rows.Scan(
			&rec.ID, &rec.LedgerID, &rec.RecordDate, &rec.Category, &rec.Description, &rec.Amount, &rec.CreatedAt,
			&detailID, &detailItem, &detailValue,
		); err != nil {
			log.WithError(err).Error("Failed to scan record row")
			return nil, err
		}

		if current == nil || current.ID != rec.ID {
			rec.Details = []model.RecordDetail{}
			records = append(records, &rec)
			current = records[len(records)-1]
		}

		if detailID.Valid {
			current.Details = append(current.Details, model.RecordDetail{
				ID:       int(detailID.Int64),
				RecordID: current.ID,
				Item:     detailItem.String,
				Value:    detailValue.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed while iterating record rows")
		return nil, err
	}

	return records, nil
}

// CreateRecord inserts a record and its detail rows within the caller's
// transaction.
func (r *RecordRepository) CreateRecord(tx *sql.Tx, record *model.LedgerRecord) error {
	log := logger.Log.WithFields(logrus.Fields{
		"ledger_id":   record.LedgerID,
		"record_date": record.RecordDate.Format("2006-01-02"),
		"category":    record.Category,
	})
	log.Info("Executing query to create a new ledger record")

	query := `INSERT INTO ledger_records (ledger_id, record_date, category, description, amount) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := tx.QueryRow(query, record.LedgerID, record.RecordDate, record.Category, record.Description, record.Amount).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create ledger record query")
		return err
	}

	detailQuery := `INSERT INTO record_details (record_id, item, value) VALUES ($1, $2, $3) RETURNING id`
	for i := range record.Details {
		d := &record.Details[i]
		d.RecordID = record.ID
		if err := tx.QueryRow(detailQuery, d.RecordID, d.Item, d.Value).Scan(&d.ID); err != nil {
			log.WithError(err).Error("Failed to execute create record detail query")
			return err
		}
	}
	return nil
}
