package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"time"

	"github.com/sirupsen/logrus"
)

// IPurchaseRepository defines the contract for purchase database
// operations.
type IPurchaseRepository interface {
	CreatePurchase(tx *sql.Tx, purchase *model.Purchase) error
	GetPurchaseByID(id int) (*model.Purchase, error)
	GetAllPurchases(status string, taskID int) ([]*model.Purchase, error)
	UpdatePurchaseStatus(id int, status string, receiptDate *time.Time) error
}

// PurchaseRepository implements IPurchaseRepository.
type PurchaseRepository struct {
	DB *sql.DB
}

func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

// CreatePurchase inserts a purchase within the caller's transaction.
func (r *PurchaseRepository) CreatePurchase(tx *sql.Tx, purchase *model.Purchase) error {
	log := logger.Log.WithFields(logrus.Fields{
		"task_id": purchase.TaskID,
		"link_id": purchase.LinkID,
	})
	log.Info("Executing query to create a purchase")

	query := `INSERT INTO purchases (task_id, link_id, quantity, total_cost, status) VALUES ($1, $2, $3, $4, $5) RETURNING id, purchase_date`
	err := tx.QueryRow(query, purchase.TaskID, purchase.LinkID, purchase.Quantity, purchase.TotalCost, purchase.Status).
		Scan(&purchase.ID, &purchase.PurchaseDate)
	if err != nil {
		log.WithError(err).Error("Failed to execute create purchase query")
		return err
	}
	return nil
}

func (r *PurchaseRepository) GetPurchaseByID(id int) (*model.Purchase, error) {
	p := &model.Purchase{}
	query := `SELECT id, task_id, link_id, quantity, total_cost, status, receipt_date, purchase_date FROM purchases WHERE id = $1`
	err := r.DB.QueryRow(query, id).
		Scan(&p.ID, &p.TaskID, &p.LinkID, &p.Quantity, &p.TotalCost, &p.Status, &p.ReceiptDate, &p.PurchaseDate)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetAllPurchases lists purchases newest first, optionally filtered by
// status and/or task, enriched with the linked material and supplier
// names.
func (r *PurchaseRepository) GetAllPurchases(status string, taskID int) ([]*model.Purchase, error) {
	query := `
		SELECT p.id, p.task_id, p.link_id, p.quantity, p.total_cost, p.status, p.receipt_date, p.purchase_date,
		       ms.unit_price, m.name, s.name
		FROM purchases p
		JOIN material_suppliers ms ON ms.id = p.link_id
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		WHERE ($1 = '' OR p.status = $1)
		  AND ($2 = 0 OR p.task_id = $2)
		ORDER BY p.purchase_date DESC, p.id DESC`
	rows, err := r.DB.Query(query, status, taskID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for purchases")
		return nil, err
	}
	defer rows.Close()

	purchases := []*model.Purchase{}
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.TaskID, &p.LinkID, &p.Quantity, &p.TotalCost, &p.Status, &p.ReceiptDate, &p.PurchaseDate,
			&p.UnitPrice, &p.MaterialName, &p.SupplierName); err != nil {
			logger.Log.WithError(err).Error("Failed to scan purchase row")
			return nil, err
		}
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}

// UpdatePurchaseStatus writes a new status, and the receipt date when
// one is given.
func (r *PurchaseRepository) UpdatePurchaseStatus(id int, status string, receiptDate *time.Time) error {
	log := logger.Log.WithFields(logrus.Fields{
		"purchase_id": id,
		"status":      status,
	})
	log.Info("Executing query to update a purchase status")

	query := `UPDATE purchases SET status = $1, receipt_date = COALESCE($2, receipt_date) WHERE id = $3`
	_, err := r.DB.Exec(query, status, receiptDate, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute update purchase status query")
		return err
	}
	return nil
}
