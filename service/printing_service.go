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
	ErrTaskNotFound        = errors.New("printing task not found")
	ErrBookNotFound        = errors.New("book not found")
	ErrEmployeeInactive    = errors.New("employee does not exist or has left")
	ErrPastDueDate         = errors.New("due date must not be in the past")
	ErrNoSupplier          = errors.New("a required material has no active supplier")
	ErrInvalidStatusChange = errors.New("status change not allowed from the current status")
)

// materialRate is the per-copy consumption of one material.
type materialRate struct {
	materialID int
	perCopy    decimal.Decimal
}

// printRunRates is the simplified consumption rule for a print run:
// half a unit of paper and a tenth of a unit of ink per copy.
var printRunRates = []materialRate{
	{materialID: 1, perCopy: decimal.NewFromFloat(0.5)},
	{materialID: 2, perCopy: decimal.NewFromFloat(0.1)},
}

// PrintingService owns the print-run workflow: task submission with
// generated purchase orders, status transitions, and completion with
// stock consumption.
type PrintingService struct {
	db           *sql.DB
	taskRepo     repository.ITaskRepository
	employeeRepo repository.IEmployeeRepository
	bookRepo     repository.IBookRepository
	materialRepo repository.IMaterialRepository
	supplierRepo repository.ISupplierRepository
	purchaseRepo repository.IPurchaseRepository
	inventory    *InventoryService
}

func NewPrintingService(db *sql.DB, taskRepo repository.ITaskRepository, employeeRepo repository.IEmployeeRepository, bookRepo repository.IBookRepository, materialRepo repository.IMaterialRepository, supplierRepo repository.ISupplierRepository, purchaseRepo repository.IPurchaseRepository, inventory *InventoryService) *PrintingService {
	return &PrintingService{
		db:           db,
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		bookRepo:     bookRepo,
		materialRepo: materialRepo,
		supplierRepo: supplierRepo,
		purchaseRepo: purchaseRepo,
		inventory:    inventory,
	}
}

// requirements returns the material consumption plan for a print run of
// the given size, in a fixed material order.
func (s *PrintingService) requirements(quantity int) []StockChange {
	qty := decimal.NewFromInt(int64(quantity))
	changes := make([]StockChange, 0, len(printRunRates))
	for _, rate := range printRunRates {
		changes = append(changes, StockChange{
			MaterialID: rate.materialID,
			Delta:      rate.perCopy.Mul(qty),
		})
	}
	return changes
}

// SubmitTask creates a print run and, in the same transaction, one
// purchase order per required material against the best available
// supplier link. A material with no link from an active supplier aborts
// the submission.
func (s *PrintingService) SubmitTask(ctx context.Context, req model.CreatePrintingTaskRequest) (*model.PrintingTask, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"book_id":  req.BookID,
		"quantity": req.Quantity,
	})
	log.Info("Starting printing task submission")

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	today := time.Now().Truncate(24 * time.Hour)
	if dueDate.Before(today) {
		return nil, ErrPastDueDate
	}

	employee, err := s.employeeRepo.GetEmployeeByID(req.EmployeeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEmployeeInactive
		}
		return nil, err
	}
	if employee.Status != model.EmployeeStatusActive {
		return nil, ErrEmployeeInactive
	}
	if _, err := s.bookRepo.GetBookByID(req.BookID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	task := &model.PrintingTask{
		EmployeeID: req.EmployeeID,
		BookID:     req.BookID,
		Quantity:   req.Quantity,
		Status:     model.TaskStatusPending,
		DueDate:    dueDate,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.taskRepo.CreateTask(tx, task); err != nil {
		return nil, fmt.Errorf("could not create printing task: %w", err)
	}

	for _, need := range s.requirements(req.Quantity) {
		links, err := s.supplierRepo.GetLinksForMaterial(need.MaterialID)
		if err != nil {
			return nil, err
		}
		if len(links) == 0 {
			log.WithField("material_id", need.MaterialID).Warn("No active supplier for required material")
			return nil, ErrNoSupplier
		}
		best := links[0]

		purchase := &model.Purchase{
			TaskID:    task.ID,
			LinkID:    best.ID,
			Quantity:  need.Delta,
			TotalCost: need.Delta.Mul(best.UnitPrice).Round(2),
			Status:    model.PurchaseStatusPending,
		}
		if err := s.purchaseRepo.CreatePurchase(tx, purchase); err != nil {
			return nil, fmt.Errorf("could not create purchase for task: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.WithField("task_id", task.ID).Info("Printing task submitted successfully")
	return task, nil
}

// TaskRequirements compares a task's consumption plan against current
// stock levels.
func (s *PrintingService) TaskRequirements(taskID int) ([]model.TaskRequirement, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return s.requirementsWithStock(task.Quantity)
}

func (s *PrintingService) requirementsWithStock(quantity int) ([]model.TaskRequirement, error) {
	items := []model.TaskRequirement{}
	for _, need := range s.requirements(quantity) {
		material, err := s.materialRepo.GetMaterialByID(need.MaterialID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, ErrMaterialNotFound
			}
			return nil, err
		}
		shortage := need.Delta.Sub(material.StockQuantity)
		if shortage.IsNegative() {
			shortage = decimal.Zero
		}
		items = append(items, model.TaskRequirement{
			MaterialID:   material.ID,
			MaterialName: material.Name,
			Unit:         material.Unit,
			RequiredQty:  need.Delta,
			CurrentStock: material.StockQuantity,
			Shortage:     shortage,
		})
	}
	return items, nil
}

// CompleteTask marks a task completed after consuming its materials. On
// ErrInsufficientStock the returned requirements carry the shortage per
// material so the caller can see what is missing.
func (s *PrintingService) CompleteTask(ctx context.Context, taskID, operatorID int) ([]model.TaskRequirement, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	switch task.Status {
	case model.TaskStatusCompleted, model.TaskStatusCancelled:
		return nil, ErrInvalidStatusChange
	}

	items, err := s.requirementsWithStock(task.Quantity)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Shortage.IsPositive() {
			logger.Log.WithField("task_id", taskID).Warn("Task completion blocked by material shortage")
			return items, ErrInsufficientStock
		}
	}

	reference := fmt.Sprintf("task:%d", taskID)
	changes := []StockChange{}
	for _, need := range s.requirements(task.Quantity) {
		if need.Delta.IsZero() {
			continue
		}
		changes = append(changes, StockChange{
			MaterialID: need.MaterialID,
			Delta:      need.Delta.Neg(),
			ChangeType: model.StockChangeOutbound,
			Reference:  reference,
			OperatorID: operatorID,
			Note:       "print run consumption",
		})
	}
	if _, err := s.inventory.ApplyChanges(ctx, changes); err != nil {
		return nil, err
	}

	completed := time.Now()
	if err := s.taskRepo.UpdateTaskStatus(taskID, model.TaskStatusCompleted, &completed); err != nil {
		return nil, err
	}
	logger.Log.WithField("task_id", taskID).Info("Printing task completed, materials consumed")
	return nil, nil
}

// taskTransitions lists the allowed plain status moves. Completion is
// not among them: it consumes stock and goes through CompleteTask.
var taskTransitions = map[string][]string{
	model.TaskStatusPending:    {model.TaskStatusInProgress, model.TaskStatusCancelled},
	model.TaskStatusInProgress: {model.TaskStatusCancelled},
}

// UpdateTaskStatus applies a plain status transition.
func (s *PrintingService) UpdateTaskStatus(taskID int, newStatus string) error {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrTaskNotFound
		}
		return err
	}

	allowed := false
	for _, next := range taskTransitions[task.Status] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidStatusChange
	}
	return s.taskRepo.UpdateTaskStatus(taskID, newStatus, nil)
}

// GetTaskDetail returns a task with its employee, book and purchase
// orders.
func (s *PrintingService) GetTaskDetail(taskID int) (*model.TaskDetail, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	detail := &model.TaskDetail{Task: task}
	if detail.Employee, err = s.employeeRepo.GetEmployeeByID(task.EmployeeID); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if detail.Book, err = s.bookRepo.GetBookByID(task.BookID); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if detail.Purchases, err = s.purchaseRepo.GetAllPurchases("", taskID); err != nil {
		return nil, err
	}
	return detail, nil
}

// ListTasks lists print runs, optionally filtered by status.
func (s *PrintingService) ListTasks(status string) ([]*model.PrintingTask, error) {
	return s.taskRepo.GetAllTasks(status)
}
