package service

import (
	"database/sql"
	"errors"
	"go-publisher-api/model"
	"go-publisher-api/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrNegativeValue    = errors.New("value must not be negative")
)

// MaterialService maintains the material and supplier catalogs and the
// links between them.
type MaterialService struct {
	materialRepo repository.IMaterialRepository
	supplierRepo repository.ISupplierRepository
	stockLogRepo repository.IStockLogRepository
}

func NewMaterialService(materialRepo repository.IMaterialRepository, supplierRepo repository.ISupplierRepository, stockLogRepo repository.IStockLogRepository) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		supplierRepo: supplierRepo,
		stockLogRepo: stockLogRepo,
	}
}

// CreateMaterial registers a material. The unit price is optional and
// defaults to zero.
func (s *MaterialService) CreateMaterial(req model.CreateMaterialRequest) (*model.Material, error) {
	price := decimal.Zero
	if req.UnitPrice != "" {
		var err error
		price, err = decimal.NewFromString(req.UnitPrice)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		if price.IsNegative() {
			return nil, ErrNegativeValue
		}
	}

	material := &model.Material{
		Name:      req.Name,
		Unit:      req.Unit,
		Spec:      req.Spec,
		UnitPrice: price,
	}
	if err := s.materialRepo.CreateMaterial(material); err != nil {
		return nil, err
	}
	return material, nil
}

// ListMaterials lists materials, optionally filtered by a name keyword.
func (s *MaterialService) ListMaterials(nameFilter string) ([]*model.Material, error) {
	return s.materialRepo.GetAllMaterials(nameFilter)
}

// MaterialDetail is a material together with its recent stock movements.
type MaterialDetail struct {
	Material *model.Material   `json:"material"`
	Logs     []*model.StockLog `json:"logs"`
}

// stockLogLimit caps the movement history returned with a material.
const stockLogLimit = 100

// GetMaterialDetail returns a material with its recent stock movements,
// newest first.
func (s *MaterialService) GetMaterialDetail(materialID int) (*MaterialDetail, error) {
	material, err := s.materialRepo.GetMaterialByID(materialID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	logs, err := s.stockLogRepo.GetLogsByMaterial(materialID, stockLogLimit)
	if err != nil {
		return nil, err
	}
	return &MaterialDetail{Material: material, Logs: logs}, nil
}

// SetSafetyStock updates the low-stock threshold of a material.
func (s *MaterialService) SetSafetyStock(materialID int, value string) error {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return ErrInvalidAmount
	}
	if v.IsNegative() {
		return ErrNegativeValue
	}
	if _, err := s.materialRepo.GetMaterialByID(materialID); err != nil {
		if err == sql.ErrNoRows {
			return ErrMaterialNotFound
		}
		return err
	}
	return s.materialRepo.UpdateSafetyStock(materialID, v)
}

// SetUnitPrice updates the standard unit price of a material.
func (s *MaterialService) SetUnitPrice(materialID int, value string) error {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return ErrInvalidAmount
	}
	if v.IsNegative() {
		return ErrNegativeValue
	}
	if _, err := s.materialRepo.GetMaterialByID(materialID); err != nil {
		if err == sql.ErrNoRows {
			return ErrMaterialNotFound
		}
		return err
	}
	return s.materialRepo.UpdateUnitPrice(materialID, v)
}

// CreateSupplier registers a supplier. A missing status defaults to
// active cooperation.
func (s *MaterialService) CreateSupplier(req model.CreateSupplierRequest) (*model.Supplier, error) {
	status := req.Status
	if status == "" {
		status = model.SupplierStatusActive
	}
	supplier := &model.Supplier{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Status:  status,
	}
	if err := s.supplierRepo.CreateSupplier(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// ListSuppliers lists suppliers, optionally filtered by status.
func (s *MaterialService) ListSuppliers(status string) ([]*model.Supplier, error) {
	return s.supplierRepo.GetAllSuppliers(status)
}

// LinkSupplier quotes a supplier's price for a material. Both sides must
// exist.
func (s *MaterialService) LinkSupplier(materialID int, req model.LinkSupplierRequest) (*model.MaterialSupplier, error) {
	price, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if price.IsNegative() {
		return nil, ErrNegativeValue
	}

	if _, err := s.materialRepo.GetMaterialByID(materialID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	if _, err := s.supplierRepo.GetSupplierByID(req.SupplierID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	link := &model.MaterialSupplier{
		MaterialID: materialID,
		SupplierID: req.SupplierID,
		UnitPrice:  price,
		Preferred:  req.Preferred,
	}
	if err := s.supplierRepo.CreateLink(link); err != nil {
		return nil, err
	}
	return link, nil
}

// ListMaterialSuppliers lists the supplier links of a material, best
// sourcing choice first.
func (s *MaterialService) ListMaterialSuppliers(materialID int) ([]*model.MaterialSupplier, error) {
	if _, err := s.materialRepo.GetMaterialByID(materialID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	return s.supplierRepo.GetLinksForMaterial(materialID)
}
