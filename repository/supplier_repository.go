package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"

	"github.com/sirupsen/logrus"
)

// ISupplierRepository defines the contract for supplier and
// material-supplier link database operations.
type ISupplierRepository interface {
	CreateSupplier(supplier *model.Supplier) error
	GetSupplierByID(id int) (*model.Supplier, error)
	GetAllSuppliers(status string) ([]*model.Supplier, error)
	CreateLink(link *model.MaterialSupplier) error
	GetLinkByID(id int) (*model.MaterialSupplier, error)
	GetLinksForMaterial(materialID int) ([]*model.MaterialSupplier, error)
}

// SupplierRepository implements ISupplierRepository.
type SupplierRepository struct {
	DB *sql.DB
}

func NewSupplierRepository(db *sql.DB) *SupplierRepository {
	return &SupplierRepository{DB: db}
}

func (r *SupplierRepository) CreateSupplier(supplier *model.Supplier) error {
	log := logger.Log.WithField("name", supplier.Name)
	log.Info("Executing query to create a new supplier")

	query := `INSERT INTO suppliers (name, contact, phone, status) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.DB.QueryRow(query, supplier.Name, supplier.Contact, supplier.Phone, supplier.Status).
		Scan(&supplier.ID, &supplier.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create supplier query")
		return err
	}
	return nil
}

func (r *SupplierRepository) GetSupplierByID(id int) (*model.Supplier, error) {
	s := &model.Supplier{}
	query := `SELECT id, name, contact, phone, status, created_at FROM suppliers WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetAllSuppliers lists suppliers ordered by name, optionally filtered
// by cooperation status.
func (r *SupplierRepository) GetAllSuppliers(status string) ([]*model.Supplier, error) {
	query := `
		SELECT id, name, contact, phone, status, created_at
		FROM suppliers
		WHERE ($1 = '' OR status = $1)
		ORDER BY name, id`
	rows, err := r.DB.Query(query, status)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for suppliers")
		return nil, err
	}
	defer rows.Close()

	suppliers := []*model.Supplier{}
	for rows.Next() {
		var s model.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Status, &s.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan supplier row")
			return nil, err
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}

func (r *SupplierRepository) CreateLink(link *model.MaterialSupplier) error {
	log := logger.Log.WithFields(logrus.Fields{
		"material_id": link.MaterialID,
		"supplier_id": link.SupplierID,
	})
	log.Info("Executing query to link a supplier to a material")

	query := `INSERT INTO material_suppliers (material_id, supplier_id, unit_price, preferred) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.DB.QueryRow(query, link.MaterialID, link.SupplierID, link.UnitPrice, link.Preferred).Scan(&link.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute create material-supplier link query")
		return err
	}
	return nil
}

func (r *SupplierRepository) GetLinkByID(id int) (*model.MaterialSupplier, error) {
	link := &model.MaterialSupplier{}
	query := `
		SELECT ms.id, ms.material_id, ms.supplier_id, ms.unit_price, ms.preferred, m.name, s.name
		FROM material_suppliers ms
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		WHERE ms.id = $1`
	err := r.DB.QueryRow(query, id).Scan(&link.ID, &link.MaterialID, &link.SupplierID, &link.UnitPrice, &link.Preferred, &link.MaterialName, &link.SupplierName)
	if err != nil {
		return nil, err
	}
	return link, nil
}

// GetLinksForMaterial lists the supplier links of a material from active
// suppliers only, preferred links first and cheapest within each group,
// so the first row is the best sourcing choice.
func (r *SupplierRepository) GetLinksForMaterial(materialID int) ([]*model.MaterialSupplier, error) {
	query := `
		SELECT ms.id, ms.material_id, ms.supplier_id, ms.unit_price, ms.preferred, m.name, s.name
		FROM material_suppliers ms
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		WHERE ms.material_id = $1 AND s.status = $2
		ORDER BY ms.preferred DESC, ms.unit_price ASC, ms.id ASC`
	rows, err := r.DB.Query(query, materialID, model.SupplierStatusActive)
	if err != nil {
		logger.Log.WithError(err).WithField("material_id", materialID).Error("Failed to execute query for material suppliers")
		return nil, err
	}
	defer rows.Close()

	links := []*model.MaterialSupplier{}
	for rows.Next() {
		var l model.MaterialSupplier
		if err := rows.Scan(&l.ID, &l.MaterialID, &l.SupplierID, &l.UnitPrice, &l.Preferred, &l.MaterialName, &l.SupplierName); err != nil {
			logger.Log.WithError(err).Error("Failed to scan material-supplier link row")
			return nil, err
		}
		links = append(links, &l)
	}
	return links, rows.Err()
}
