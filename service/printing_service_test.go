// file: service/printing_service_test.go

package service

import (
	"context"
	"database/sql"
	"go-publisher-api/model"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockTaskRepo is a mock for ITaskRepository.
type mockTaskRepo struct{ mock.Mock }

func (m *mockTaskRepo) CreateTask(tx *sql.Tx, task *model.PrintingTask) error {
	args := m.Called(tx, task)
	return args.Error(0)
}
func (m *mockTaskRepo) GetTaskByID(id int) (*model.PrintingTask, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintingTask), args.Error(1)
}
func (m *mockTaskRepo) GetAllTasks(status string) ([]*model.PrintingTask, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PrintingTask), args.Error(1)
}
func (m *mockTaskRepo) UpdateTaskStatus(id int, status string, completedDate *time.Time) error {
	args := m.Called(id, status, completedDate)
	return args.Error(0)
}

// mockSupplierRepo is a mock for ISupplierRepository.
type mockSupplierRepo struct{ mock.Mock }

func (m *mockSupplierRepo) CreateSupplier(supplier *model.Supplier) error {
	args := m.Called(supplier)
	return args.Error(0)
}
func (m *mockSupplierRepo) GetSupplierByID(id int) (*model.Supplier, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}
func (m *mockSupplierRepo) GetAllSuppliers(status string) ([]*model.Supplier, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Supplier), args.Error(1)
}
func (m *mockSupplierRepo) CreateLink(link *model.MaterialSupplier) error {
	args := m.Called(link)
	return args.Error(0)
}
func (m *mockSupplierRepo) GetLinkByID(id int) (*model.MaterialSupplier, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialSupplier), args.Error(1)
}
func (m *mockSupplierRepo) GetLinksForMaterial(materialID int) ([]*model.MaterialSupplier, error) {
	args := m.Called(materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MaterialSupplier), args.Error(1)
}

// mockPurchaseRepo is a mock for IPurchaseRepository.
type mockPurchaseRepo struct{ mock.Mock }

func (m *mockPurchaseRepo) CreatePurchase(tx *sql.Tx, purchase *model.Purchase) error {
	args := m.Called(tx, purchase)
	return args.Error(0)
}
func (m *mockPurchaseRepo) GetPurchaseByID(id int) (*model.Purchase, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}
func (m *mockPurchaseRepo) GetAllPurchases(status string, taskID int) ([]*model.Purchase, error) {
	args := m.Called(status, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Purchase), args.Error(1)
}
func (m *mockPurchaseRepo) UpdatePurchaseStatus(id int, status string, receiptDate *time.Time) error {
	args := m.Called(id, status, receiptDate)
	return args.Error(0)
}

type printingMocks struct {
	taskRepo     *mockTaskRepo
	employeeRepo *mockEmployeeRepo
	bookRepo     *mockBookRepo
	materialRepo *mockMaterialRepo
	supplierRepo *mockSupplierRepo
	purchaseRepo *mockPurchaseRepo
}

func newPrintingService(db *sql.DB) (*PrintingService, printingMocks) {
	m := printingMocks{
		taskRepo:     new(mockTaskRepo),
		employeeRepo: new(mockEmployeeRepo),
		bookRepo:     new(mockBookRepo),
		materialRepo: new(mockMaterialRepo),
		supplierRepo: new(mockSupplierRepo),
		purchaseRepo: new(mockPurchaseRepo),
	}
	stockLogRepo := new(mockStockLogRepo)
	stockLogRepo.On("CreateStockLog", mock.Anything, mock.Anything).Return(nil)
	inventory := NewInventoryService(db, m.materialRepo, stockLogRepo)
	svc := NewPrintingService(db, m.taskRepo, m.employeeRepo, m.bookRepo, m.materialRepo, m.supplierRepo, m.purchaseRepo, inventory)
	return svc, m
}

func activePrinter() *model.Employee {
	return &model.Employee{ID: 3, Name: "Ann Pelle", Position: "printer", Status: model.EmployeeStatusActive}
}

func TestPrintingService_SubmitTask(t *testing.T) {
	ctx := context.Background()
	dueDate := time.Now().AddDate(0, 0, 7).Format(dateLayout)

	t.Run("success creates the task and one purchase per material", func(t *testing.T) {
		dbConn, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer dbConn.Close()

		svc, m := newPrintingService(dbConn)
		m.employeeRepo.On("GetEmployeeByID", 3).Return(activePrinter(), nil).Once()
		m.bookRepo.On("GetBookByID", 8).Return(&model.Book{ID: 8, Title: "Field Guide to Rivers"}, nil).Once()

		dbMock.ExpectBegin()
		m.taskRepo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task *model.PrintingTask) bool {
			return task.EmployeeID == 3 && task.BookID == 8 && task.Quantity == 100 &&
				task.Status == model.TaskStatusPending
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.PrintingTask).ID = 11
		}).Return(nil).Once()
		m.supplierRepo.On("GetLinksForMaterial", 1).Return([]*model.MaterialSupplier{
			{ID: 5, MaterialID: 1, SupplierID: 2, UnitPrice: dec("4.00"), Preferred: true},
			{ID: 6, MaterialID: 1, SupplierID: 4, UnitPrice: dec("3.50")},
		}, nil).Once()
		m.supplierRepo.On("GetLinksForMaterial", 2).Return([]*model.MaterialSupplier{
			{ID: 7, MaterialID: 2, SupplierID: 2, UnitPrice: dec("12.50")},
		}, nil).Once()
		// The preferred link wins for paper even though another quote is
		// cheaper.
		m.purchaseRepo.On("CreatePurchase", mock.Anything, mock.MatchedBy(func(p *model.Purchase) bool {
			return p.TaskID == 11 && p.LinkID == 5 && p.Quantity.Equal(dec("50")) &&
				p.TotalCost.Equal(dec("200.00")) && p.Status == model.PurchaseStatusPending
		})).Return(nil).Once()
		m.purchaseRepo.On("CreatePurchase", mock.Anything, mock.MatchedBy(func(p *model.Purchase) bool {
			return p.TaskID == 11 && p.LinkID == 7 && p.Quantity.Equal(dec("10")) &&
				p.TotalCost.Equal(dec("125.00"))
		})).Return(nil).Once()
		dbMock.ExpectCommit()

		task, err := svc.SubmitTask(ctx, model.CreatePrintingTaskRequest{
			EmployeeID: 3, BookID: 8, Quantity: 100, DueDate: dueDate,
		})

		assert.NoError(t, err)
		assert.Equal(t, 11, task.ID)
		m.taskRepo.AssertExpectations(t)
		m.purchaseRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("a due date in the past is rejected", func(t *testing.T) {
		svc, _ := newPrintingService(nil)
		_, err := svc.SubmitTask(ctx, model.CreatePrintingTaskRequest{
			EmployeeID: 3, BookID: 8, Quantity: 100, DueDate: "2020-01-01",
		})
		assert.Equal(t, ErrPastDueDate, err)
	})

	t.Run("a malformed due date is rejected", func(t *testing.T) {
		svc, _ := newPrintingService(nil)
		_, err := svc.SubmitTask(ctx, model.CreatePrintingTaskRequest{
			EmployeeID: 3, BookID: 8, Quantity: 100, DueDate: "next tuesday",
		})
		assert.Equal(t, ErrInvalidDateFormat, err)
	})

	t.Run("an employee who has left cannot submit", func(t *testing.T) {
		svc, m := newPrintingService(nil)
		left := activePrinter()
		left.Status = model.EmployeeStatusLeft
		m.employeeRepo.On("GetEmployeeByID", 3).Return(left, nil).Once()

		_, err := svc.SubmitTask(ctx, model.CreatePrintingTaskRequest{
			EmployeeID: 3, BookID: 8, Quantity: 100, DueDate: dueDate,
		})
		assert.Equal(t, ErrEmployeeInactive, err)
	})

	t.Run("a missing book is rejected", func(t *testing.T) {
		svc, m := newPrintingService(nil)
		m.employeeRepo.On("GetEmployeeByID", 3).Return(activePrinter(), nil).Once()
		m.bookRepo.On("GetBookByID", 99).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.SubmitTask(ctx, model.CreatePrintingTaskRequest{
			EmployeeID: 3, BookID: 99, Quantity: 100, DueDate: dueDate,
		})
		assert.Equal(t, ErrBookNotFound, err)
	})

	t.Run("a material without an active supplier aborts the submission", func(t *testing.T) {
		dbConn, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer dbConn.Close()

		svc, m := newPrintingService(dbConn)
		m.employeeRepo.On("GetEmployeeByID", 3).Return(activePrinter(), nil).Once()
		m.bookRepo.On("GetBookByID", 8).Return(&model.Book{ID: 8}, nil).Once()

		dbMock.ExpectBegin()
		m.taskRepo.On("CreateTask", mock.Anything, mock.Anything).Return(nil).Once()
		m.supplierRepo.On("GetLinksForMaterial", 1).Return([]*model.MaterialSupplier{}, nil).Once()
		dbMock.ExpectRollback()

		_, err = svc.SubmitTask(ctx, model.CreatePrintingTaskRequest{
			EmployeeID: 3, BookID: 8, Quantity: 100, DueDate: dueDate,
		})

		assert.Equal(t, ErrNoSupplier, err)
		m.purchaseRepo.AssertNotCalled(t, "CreatePurchase")
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestPrintingService_UpdateTaskStatus(t *testing.T) {
	t.Run("pending moves to in_progress", func(t *testing.T) {
		svc, m := newPrintingService(nil)
		m.taskRepo.On("GetTaskByID", 11).Return(&model.PrintingTask{ID: 11, Status: model.TaskStatusPending}, nil).Once()
		m.taskRepo.On("UpdateTaskStatus", 11, model.TaskStatusInProgress, (*time.Time)(nil)).Return(nil).Once()

		assert.NoError(t, svc.UpdateTaskStatus(11, model.TaskStatusInProgress))
		m.taskRepo.AssertExpectations(t)
	})

	t.Run("completed is not reachable by a plain status update", func(t *testing.T) {
		svc, m := newPrintingService(nil)
		m.taskRepo.On("GetTaskByID", 11).Return(&model.PrintingTask{ID: 11, Status: model.TaskStatusInProgress}, nil).Once()

		err := svc.UpdateTaskStatus(11, model.TaskStatusCompleted)
		assert.Equal(t, ErrInvalidStatusChange, err)
		m.taskRepo.AssertNotCalled(t, "UpdateTaskStatus")
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		svc, m := newPrintingService(nil)
		m.taskRepo.On("GetTaskByID", 11).Return(&model.PrintingTask{ID: 11, Status: model.TaskStatusCancelled}, nil).Once()

		err := svc.UpdateTaskStatus(11, model.TaskStatusInProgress)
		assert.Equal(t, ErrInvalidStatusChange, err)
	})
}

func TestPrintingService_CompleteTask(t *testing.T) {
	ctx := context.Background()
	pendingTask := func() *model.PrintingTask {
		return &model.PrintingTask{ID: 11, EmployeeID: 3, BookID: 8, Quantity: 100, Status: model.TaskStatusPending}
	}

	t.Run("a shortage blocks completion and reports what is missing", func(t *testing.T) {
		svc, m := newPrintingService(nil)
		m.taskRepo.On("GetTaskByID", 11).Return(pendingTask(), nil).Once()
		m.materialRepo.On("GetMaterialByID", 1).Return(paperMaterial("10"), nil).Once()
		m.materialRepo.On("GetMaterialByID", 2).Return(&model.Material{ID: 2, Name: "black ink", StockQuantity: dec("20")}, nil).Once()

		shortages, err := svc.CompleteTask(ctx, 11, 9)

		assert.Equal(t, ErrInsufficientStock, err)
		assert.Len(t, shortages, 2)
		assert.True(t, shortages[0].Shortage.Equal(dec("40")), "got %s", shortages[0].Shortage)
		assert.True(t, shortages[1].Shortage.IsZero())
		m.taskRepo.AssertNotCalled(t, "UpdateTaskStatus")
	})

	t.Run("success consumes stock before marking the task completed", func(t *testing.T) {
		dbConn, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer dbConn.Close()

		svc, m := newPrintingService(dbConn)
		m.taskRepo.On("GetTaskByID", 11).Return(pendingTask(), nil).Once()
		m.materialRepo.On("GetMaterialByID", 1).Return(paperMaterial("80"), nil).Once()
		m.materialRepo.On("GetMaterialByID", 2).Return(&model.Material{ID: 2, Name: "black ink", StockQuantity: dec("20")}, nil).Once()

		dbMock.ExpectBegin()
		m.materialRepo.On("GetMaterialForUpdate", mock.Anything, 1).Return(paperMaterial("80"), nil).Once()
		m.materialRepo.On("UpdateStock", mock.Anything, 1, mock.MatchedBy(func(q decimal.Decimal) bool {
			return q.Equal(dec("30"))
		})).Return(nil).Once()
		m.materialRepo.On("GetMaterialForUpdate", mock.Anything, 2).Return(&model.Material{ID: 2, StockQuantity: dec("20")}, nil).Once()
		m.materialRepo.On("UpdateStock", mock.Anything, 2, mock.MatchedBy(func(q decimal.Decimal) bool {
			return q.Equal(dec("10"))
		})).Return(nil).Once()
		dbMock.ExpectCommit()
		m.taskRepo.On("UpdateTaskStatus", 11, model.TaskStatusCompleted, mock.MatchedBy(func(d *time.Time) bool {
			return d != nil
		})).Return(nil).Once()

		shortages, err := svc.CompleteTask(ctx, 11, 9)

		assert.NoError(t, err)
		assert.Nil(t, shortages)
		m.taskRepo.AssertExpectations(t)
		m.materialRepo.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("a completed task cannot be completed again", func(t *testing.T) {
		svc, m := newPrintingService(nil)
		m.taskRepo.On("GetTaskByID", 11).Return(&model.PrintingTask{ID: 11, Status: model.TaskStatusCompleted}, nil).Once()

		_, err := svc.CompleteTask(ctx, 11, 9)
		assert.Equal(t, ErrInvalidStatusChange, err)
	})
}
