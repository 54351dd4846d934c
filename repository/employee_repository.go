package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"

	"github.com/sirupsen/logrus"
)

// IEmployeeRepository defines the contract for employee database
// operations.
type IEmployeeRepository interface {
	CreateEmployee(employee *model.Employee) error
	GetEmployeeByID(id int) (*model.Employee, error)
	GetAllEmployees(status, position string) ([]*model.Employee, error)
	UpdateEmployee(employee *model.Employee) error
}

// EmployeeRepository implements IEmployeeRepository.
type EmployeeRepository struct {
	DB *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

func (r *EmployeeRepository) CreateEmployee(employee *model.Employee) error {
	log := logger.Log.WithFields(logrus.Fields{
		"name":     employee.Name,
		"position": employee.Position,
	})
	log.Info("Executing query to create a new employee")

	query := `INSERT INTO employees (name, position, status, username, hired_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.DB.QueryRow(query, employee.Name, employee.Position, employee.Status, employee.Username, employee.HiredAt).Scan(&employee.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute create employee query")
		return err
	}
	return nil
}

func (r *EmployeeRepository) GetEmployeeByID(id int) (*model.Employee, error) {
	employee := &model.Employee{}
	query := `SELECT id, name, position, status, username, hired_at FROM employees WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&employee.ID, &employee.Name, &employee.Position, &employee.Status, &employee.Username, &employee.HiredAt)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

// GetAllEmployees retrieves employees, optionally filtered by status
// and/or position. Empty filter values match everything.
func (r *EmployeeRepository) GetAllEmployees(status, position string) ([]*model.Employee, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"status":   status,
		"position": position,
	})
	log.Info("Executing query to get employees")

	query := `
		SELECT id, name, position, status, username, hired_at
		FROM employees
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR position = $2)
		ORDER BY id`
	rows, err := r.DB.Query(query, status, position)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for employees")
		return nil, err
	}
	defer rows.Close()

	// An empty directory encodes as [] rather than null.
	employees := []*model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.Status, &e.Username, &e.HiredAt); err != nil {
			log.WithError(err).Error("Failed to scan employee row")
			return nil, err
		}
		employees = append(employees, &e)
	}
	return employees, nil
}

func (r *EmployeeRepository) UpdateEmployee(employee *model.Employee) error {
	log := logger.Log.WithField("employee_id", employee.ID)
	log.Info("Executing query to update an employee")

	query := `UPDATE employees SET name = $1, position = $2, status = $3 WHERE id = $4`
	_, err := r.DB.Exec(query, employee.Name, employee.Position, employee.Status, employee.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update employee query")
		return err
	}
	return nil
}
