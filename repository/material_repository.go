package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"

	"github.com/shopspring/decimal"
)

// IMaterialRepository defines the contract for material database
// operations.
type IMaterialRepository interface {
	CreateMaterial(material *model.Material) error
	GetMaterialByID(id int) (*model.Material, error)
	GetMaterialForUpdate(tx *sql.Tx, id int) (*model.Material, error)
	GetAllMaterials(nameFilter string) ([]*model.Material, error)
	GetLowStockMaterials() ([]*model.Material, error)
	UpdateStock(tx *sql.Tx, id int, newQuantity decimal.Decimal) error
	UpdateSafetyStock(id int, safetyStock decimal.Decimal) error
	UpdateUnitPrice(id int, unitPrice decimal.Decimal) error
}

// MaterialRepository implements IMaterialRepository.
type MaterialRepository struct {
	DB *sql.DB
}

func NewMaterialRepository(db *sql.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

const materialColumns = `id, name, unit, spec, unit_price, stock_quantity, safety_stock, created_at`

func scanMaterial(row interface {
	Scan(dest ...interface{}) error
}) (*model.Material, error) {
	m := &model.Material{}
	err := row.Scan(&m.ID, &m.Name, &m.Unit, &m.Spec, &m.UnitPrice, &m.StockQuantity, &m.SafetyStock, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MaterialRepository) CreateMaterial(material *model.Material) error {
	log := logger.Log.WithField("name", material.Name)
	log.Info("Executing query to create a new material")

	query := `INSERT INTO materials (name, unit, spec, unit_price) VALUES ($1, $2, $3, $4) RETURNING id, stock_quantity, safety_stock, created_at`
	err := r.DB.QueryRow(query, material.Name, material.Unit, material.Spec, material.UnitPrice).
		Scan(&material.ID, &material.StockQuantity, &material.SafetyStock, &material.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create material query")
		return err
	}
	return nil
}

func (r *MaterialRepository) GetMaterialByID(id int) (*model.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return scanMaterial(r.DB.QueryRow(query, id))
}

// GetMaterialForUpdate locks the material row for the duration of the
// caller's transaction so concurrent stock movements serialize.
func (r *MaterialRepository) GetMaterialForUpdate(tx *sql.Tx, id int) (*model.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	return scanMaterial(tx.QueryRow(query, id))
}

// GetAllMaterials lists materials ordered by name, optionally filtered
// by a case-insensitive name substring.
func (r *MaterialRepository) GetAllMaterials(nameFilter string) ([]*model.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name, id`
	rows, err := r.DB.Query(query, nameFilter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for materials")
		return nil, err
	}
	defer rows.Close()

	materials := []*model.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to scan material row")
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// GetLowStockMaterials lists materials at or below their safety stock.
func (r *MaterialRepository) GetLowStockMaterials() ([]*model.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE stock_quantity <= safety_stock ORDER BY stock_quantity, id`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for low stock materials")
		return nil, err
	}
	defer rows.Close()

	materials := []*model.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to scan material row")
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// UpdateStock writes a new absolute stock level within the caller's
// transaction.
func (r *MaterialRepository) UpdateStock(tx *sql.Tx, id int, newQuantity decimal.Decimal) error {
	query := `UPDATE materials SET stock_quantity = $1 WHERE id = $2`
	_, err := tx.Exec(query, newQuantity, id)
	if err != nil {
		logger.Log.WithError(err).WithField("material_id", id).Error("Failed to execute update stock query")
	}
	return err
}

func (r *MaterialRepository) UpdateSafetyStock(id int, safetyStock decimal.Decimal) error {
	query := `UPDATE materials SET safety_stock = $1 WHERE id = $2`
	_, err := r.DB.Exec(query, safetyStock, id)
	if err != nil {
		logger.Log.WithError(err).WithField("material_id", id).Error("Failed to execute update safety stock query")
	}
	return err
}

func (r *MaterialRepository) UpdateUnitPrice(id int, unitPrice decimal.Decimal) error {
	query := `UPDATE materials SET unit_price = $1 WHERE id = $2`
	_, err := r.DB.Exec(query, unitPrice, id)
	if err != nil {
		logger.Log.WithError(err).WithField("material_id", id).Error("Failed to execute update unit price query")
	}
	return err
}
