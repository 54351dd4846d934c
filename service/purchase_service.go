package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"go-publisher-api/repository"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrTaskCancelled    = errors.New("the printing task has been cancelled")
	ErrLinkNotFound     = errors.New("material-supplier link not found")
)

// purchaseTransitions lists the allowed plain status moves. Receiving is
// not among them: it moves stock and goes through Receive.
var purchaseTransitions = map[string][]string{
	model.PurchaseStatusPending: {model.PurchaseStatusOrdered, model.PurchaseStatusCancelled},
	model.PurchaseStatusOrdered: {model.PurchaseStatusCancelled},
}

// PurchaseService owns material purchasing: manual orders, status
// transitions, and receiving goods into stock.
type PurchaseService struct {
	db           *sql.DB
	purchaseRepo repository.IPurchaseRepository
	supplierRepo repository.ISupplierRepository
	taskRepo     repository.ITaskRepository
	inventory    *InventoryService
}

func NewPurchaseService(db *sql.DB, purchaseRepo repository.IPurchaseRepository, supplierRepo repository.ISupplierRepository, taskRepo repository.ITaskRepository, inventory *InventoryService) *PurchaseService {
	return &PurchaseService{
		db:           db,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		taskRepo:     taskRepo,
		inventory:    inventory,
	}
}

// CreatePurchase raises a manual purchase for a task against a
// material-supplier link, costed at the link's quoted price.
func (s *PurchaseService) CreatePurchase(ctx context.Context, req model.CreatePurchaseRequest) (*model.Purchase, error) {
	qty, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if !qty.IsPositive() {
		return nil, ErrInvalidAmount
	}

	task, err := s.taskRepo.GetTaskByID(req.TaskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.Status == model.TaskStatusCancelled {
		return nil, ErrTaskCancelled
	}

	link, err := s.supplierRepo.GetLinkByID(req.LinkID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	purchase := &model.Purchase{
		TaskID:    req.TaskID,
		LinkID:    req.LinkID,
		Quantity:  qty,
		TotalCost: qty.Mul(link.UnitPrice).Round(2),
		Status:    model.PurchaseStatusPending,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.purchaseRepo.CreatePurchase(tx, purchase); err != nil {
		return nil, fmt.Errorf("could not create purchase: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"purchase_id": purchase.ID,
		"task_id":     purchase.TaskID,
	}).Info("Purchase created successfully")
	return purchase, nil
}

// ListPurchases lists purchases, optionally filtered by status and/or
// task.
func (s *PurchaseService) ListPurchases(status string, taskID int) ([]*model.Purchase, error) {
	return s.purchaseRepo.GetAllPurchases(status, taskID)
}

// UpdateStatus applies a plain status transition. Received and cancelled
// purchases are terminal.
func (s *PurchaseService) UpdateStatus(purchaseID int, newStatus string) error {
	purchase, err := s.purchaseRepo.GetPurchaseByID(purchaseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrPurchaseNotFound
		}
		return err
	}

	allowed := false
	for _, next := range purchaseTransitions[purchase.Status] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidStatusChange
	}
	return s.purchaseRepo.UpdatePurchaseStatus(purchaseID, newStatus, nil)
}

// Receive books the purchased quantity into stock and marks the
// purchase received. The inbound movement lands first, so a purchase is
// never marked received without its stock change; only pending
// purchases can be received, which also rules out receiving twice.
func (s *PurchaseService) Receive(ctx context.Context, purchaseID, operatorID int) (*StockMovement, error) {
	purchase, err := s.purchaseRepo.GetPurchaseByID(purchaseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	if purchase.Status != model.PurchaseStatusPending {
		return nil, ErrInvalidStatusChange
	}

	link, err := s.supplierRepo.GetLinkByID(purchase.LinkID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	movements, err := s.inventory.ApplyChanges(ctx, []StockChange{{
		MaterialID: link.MaterialID,
		Delta:      purchase.Quantity,
		ChangeType: model.StockChangeInbound,
		Reference:  fmt.Sprintf("purchase:%d", purchaseID),
		OperatorID: operatorID,
		Note:       "purchase received into stock",
	}})
	if err != nil {
		return nil, err
	}

	received := time.Now()
	if err := s.purchaseRepo.UpdatePurchaseStatus(purchaseID, model.PurchaseStatusReceived, &received); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"purchase_id": purchaseID,
		"material_id": link.MaterialID,
	}).Info("Purchase received into stock")
	return &movements[0], nil
}
