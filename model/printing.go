package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// PrintingTask is a print run of a book, assigned to an employee.
type PrintingTask struct {
	ID            int        `json:"id"`
	EmployeeID    int        `json:"employee_id"`
	BookID        int        `json:"book_id"`
	Quantity      int        `json:"quantity"`
	Status        string     `json:"status"`
	DueDate       time.Time  `json:"due_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
}

// TaskRequirement is one material line of a task's consumption plan,
// compared against the current stock level.
type TaskRequirement struct {
	MaterialID   int             `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"`
	RequiredQty  decimal.Decimal `json:"required_qty"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Shortage     decimal.Decimal `json:"shortage"`
}

// TaskDetail bundles a task with its associated employee, book and
// purchase orders.
type TaskDetail struct {
	Task      *PrintingTask `json:"task"`
	Employee  *Employee     `json:"employee"`
	Book      *Book         `json:"book"`
	Purchases []*Purchase   `json:"purchases"`
}
