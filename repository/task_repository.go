package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"time"

	"github.com/sirupsen/logrus"
)

// ITaskRepository defines the contract for printing task database
// operations.
type ITaskRepository interface {
	CreateTask(tx *sql.Tx, task *model.PrintingTask) error
	GetTaskByID(id int) (*model.PrintingTask, error)
	GetAllTasks(status string) ([]*model.PrintingTask, error)
	UpdateTaskStatus(id int, status string, completedDate *time.Time) error
}

// TaskRepository implements ITaskRepository.
type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// CreateTask inserts a task within the caller's transaction, so the task
// and the purchases generated for it commit together.
func (r *TaskRepository) CreateTask(tx *sql.Tx, task *model.PrintingTask) error {
	log := logger.Log.WithFields(logrus.Fields{
		"book_id":  task.BookID,
		"quantity": task.Quantity,
	})
	log.Info("Executing query to create a printing task")

	query := `INSERT INTO printing_tasks (employee_id, book_id, quantity, status, due_date) VALUES ($1, $2, $3, $4, $5) RETURNING id, submitted_at`
	err := tx.QueryRow(query, task.EmployeeID, task.BookID, task.Quantity, task.Status, task.DueDate).
		Scan(&task.ID, &task.SubmittedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create printing task query")
		return err
	}
	return nil
}

func (r *TaskRepository) GetTaskByID(id int) (*model.PrintingTask, error) {
	task := &model.PrintingTask{}
	query := `SELECT id, employee_id, book_id, quantity, status, due_date, completed_date, submitted_at FROM printing_tasks WHERE id = $1`
	err := r.DB.QueryRow(query, id).
		Scan(&task.ID, &task.EmployeeID, &task.BookID, &task.Quantity, &task.Status, &task.DueDate, &task.CompletedDate, &task.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetAllTasks lists tasks newest first, optionally filtered by status.
func (r *TaskRepository) GetAllTasks(status string) ([]*model.PrintingTask, error) {
	query := `
		SELECT id, employee_id, book_id, quantity, status, due_date, completed_date, submitted_at
		FROM printing_tasks
		WHERE ($1 = '' OR status = $1)
		ORDER BY submitted_at DESC, id DESC`
	rows, err := r.DB.Query(query, status)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for printing tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := []*model.PrintingTask{}
	for rows.Next() {
		var t model.PrintingTask
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.BookID, &t.Quantity, &t.Status, &t.DueDate, &t.CompletedDate, &t.SubmittedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan printing task row")
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// UpdateTaskStatus writes a new status, and the completion date when one
// is given.
func (r *TaskRepository) UpdateTaskStatus(id int, status string, completedDate *time.Time) error {
	log := logger.Log.WithFields(logrus.Fields{
		"task_id": id,
		"status":  status,
	})
	log.Info("Executing query to update a printing task status")

	query := `UPDATE printing_tasks SET status = $1, completed_date = COALESCE($2, completed_date) WHERE id = $3`
	_, err := r.DB.Exec(query, status, completedDate, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute update printing task status query")
		return err
	}
	return nil
}
