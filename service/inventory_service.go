package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"go-publisher-api/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrInsufficientStock = errors.New("insufficient stock for this movement")

// StockChange is one requested stock movement. A positive delta is an
// inbound movement, a negative one an outbound movement.
type StockChange struct {
	MaterialID int
	Delta      decimal.Decimal
	ChangeType string
	Reference  string
	OperatorID int
	Note       string
}

// StockMovement is the applied result of a StockChange.
type StockMovement struct {
	MaterialID  int             `json:"material_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	LogID       int             `json:"log_id"`
}

// InventoryService owns all stock level changes. Every movement locks
// its material row, refuses to drive the level negative, and writes a
// log row in the same transaction.
type InventoryService struct {
	db           *sql.DB
	materialRepo repository.IMaterialRepository
	stockLogRepo repository.IStockLogRepository
}

func NewInventoryService(db *sql.DB, materialRepo repository.IMaterialRepository, stockLogRepo repository.IStockLogRepository) *InventoryService {
	return &InventoryService{
		db:           db,
		materialRepo: materialRepo,
		stockLogRepo: stockLogRepo,
	}
}

// ApplyChanges applies a batch of stock movements in one database
// transaction. Either every change lands, with a log row each, or none
// do: the first material that would go negative aborts the whole batch
// with ErrInsufficientStock.
func (s *InventoryService) ApplyChanges(ctx context.Context, changes []StockChange) ([]StockMovement, error) {
	if len(changes) == 0 {
		return []StockMovement{}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	movements := make([]StockMovement, 0, len(changes))
	for _, ch := range changes {
		material, err := s.materialRepo.GetMaterialForUpdate(tx, ch.MaterialID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, ErrMaterialNotFound
			}
			return nil, err
		}

		newQty := material.StockQuantity.Add(ch.Delta)
		if newQty.IsNegative() {
			logger.Log.WithFields(logrus.Fields{
				"material_id": ch.MaterialID,
				"current":     material.StockQuantity,
				"delta":       ch.Delta,
			}).Warn("Stock movement rejected: level would go negative")
			return nil, ErrInsufficientStock
		}

		if err := s.materialRepo.UpdateStock(tx, ch.MaterialID, newQty); err != nil {
			return nil, err
		}

		changeType := ch.ChangeType
		if changeType == "" {
			changeType = model.StockChangeInbound
			if ch.Delta.IsNegative() {
				changeType = model.StockChangeOutbound
			}
		}
		entry := &model.StockLog{
			MaterialID: ch.MaterialID,
			Delta:      ch.Delta,
			ChangeType: changeType,
			Reference:  ch.Reference,
			OperatorID: ch.OperatorID,
			Note:       ch.Note,
		}
		if err := s.stockLogRepo.CreateStockLog(tx, entry); err != nil {
			return nil, err
		}

		movements = append(movements, StockMovement{
			MaterialID:  ch.MaterialID,
			NewQuantity: newQty,
			LogID:       entry.ID,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}
	return movements, nil
}

// AdjustStock applies one manual stock movement.
func (s *InventoryService) AdjustStock(ctx context.Context, req model.AdjustStockRequest, operatorID int) (*StockMovement, error) {
	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	movements, err := s.ApplyChanges(ctx, []StockChange{{
		MaterialID: req.MaterialID,
		Delta:      delta,
		ChangeType: req.ChangeType,
		Reference:  req.Reference,
		OperatorID: operatorID,
		Note:       req.Note,
	}})
	if err != nil {
		return nil, err
	}
	return &movements[0], nil
}

// LowStockAlerts lists materials at or below their safety stock. A fully
// depleted material is CRITICAL, the rest are WARNING.
func (s *InventoryService) LowStockAlerts() ([]model.StockAlert, error) {
	materials, err := s.materialRepo.GetLowStockMaterials()
	if err != nil {
		return nil, err
	}

	alerts := []model.StockAlert{}
	for _, m := range materials {
		level := model.AlertLevelWarning
		if m.StockQuantity.IsZero() {
			level = model.AlertLevelCritical
		}
		alerts = append(alerts, model.StockAlert{
			MaterialID:   m.ID,
			MaterialName: m.Name,
			CurrentStock: m.StockQuantity,
			SafetyStock:  m.SafetyStock,
			AlertLevel:   level,
		})
	}
	return alerts, nil
}

// Report summarizes the whole inventory: total valuation at standard
// unit prices plus low-stock and out-of-stock counts.
func (s *InventoryService) Report() (*model.InventoryReport, error) {
	materials, err := s.materialRepo.GetAllMaterials("")
	if err != nil {
		return nil, err
	}

	report := &model.InventoryReport{
		TotalMaterials: len(materials),
		TotalValue:     decimal.Zero,
		Materials:      materials,
	}
	for _, m := range materials {
		report.TotalValue = report.TotalValue.Add(m.StockQuantity.Mul(m.UnitPrice))
		if m.StockQuantity.LessThanOrEqual(m.SafetyStock) {
			report.LowStockItems++
		}
		if m.StockQuantity.IsZero() {
			report.OutOfStockItems++
		}
	}
	report.TotalValue = report.TotalValue.Round(2)
	return report, nil
}
