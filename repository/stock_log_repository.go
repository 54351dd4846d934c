package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"

	"github.com/sirupsen/logrus"
)

// IStockLogRepository defines the contract for stock movement log
// database operations.
type IStockLogRepository interface {
	CreateStockLog(tx *sql.Tx, log *model.StockLog) error
	GetLogsByMaterial(materialID, limit int) ([]*model.StockLog, error)
}

// StockLogRepository implements IStockLogRepository.
type StockLogRepository struct {
	DB *sql.DB
}

func NewStockLogRepository(db *sql.DB) *StockLogRepository {
	return &StockLogRepository{DB: db}
}

// CreateStockLog inserts a movement row within the caller's transaction,
// so the log and the stock update it describes commit together.
func (r *StockLogRepository) CreateStockLog(tx *sql.Tx, entry *model.StockLog) error {
	log := logger.Log.WithFields(logrus.Fields{
		"material_id": entry.MaterialID,
		"change_type": entry.ChangeType,
	})
	log.Info("Executing query to create a stock log entry")

	query := `INSERT INTO stock_logs (material_id, delta, change_type, reference, operator_id, note) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := tx.QueryRow(query, entry.MaterialID, entry.Delta, entry.ChangeType, entry.Reference, entry.OperatorID, entry.Note).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create stock log query")
		return err
	}
	return nil
}

// GetLogsByMaterial lists the most recent movements of a material,
// newest first.
func (r *StockLogRepository) GetLogsByMaterial(materialID, limit int) ([]*model.StockLog, error) {
	query := `
		SELECT id, material_id, delta, change_type, reference, operator_id, note, created_at
		FROM stock_logs
		WHERE material_id = $1
		ORDER BY id DESC
		LIMIT $2`
	rows, err := r.DB.Query(query, materialID, limit)
	if err != nil {
		logger.Log.WithError(err).WithField("material_id", materialID).Error("Failed to execute query for stock logs")
		return nil, err
	}
	defer rows.Close()

	logs := []*model.StockLog{}
	for rows.Next() {
		var l model.StockLog
		if err := rows.Scan(&l.ID, &l.MaterialID, &l.Delta, &l.ChangeType, &l.Reference, &l.OperatorID, &l.Note, &l.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan stock log row")
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
