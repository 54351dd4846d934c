// file: service/employee_service.go

package service

import (
	"database/sql"
	"errors"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"go-publisher-api/repository"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeService handles the employee directory. It also keeps the role
// of a linked user account in step with the employee's position.
type EmployeeService struct {
	employeeRepo repository.IEmployeeRepository
	userService  *UserService
}

func NewEmployeeService(employeeRepo repository.IEmployeeRepository, userService *UserService) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		userService:  userService,
	}
}

// CreateEmployee adds an employee to the directory. The hire date is an
// ISO calendar date.
func (s *EmployeeService) CreateEmployee(req model.CreateEmployeeRequest) (*model.Employee, error) {
	hiredAt, err := time.Parse(dateLayout, req.HiredAt)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	employee := &model.Employee{
		Name:     req.Name,
		Position: req.Position,
		Status:   model.EmployeeStatusActive,
		Username: req.Username,
		HiredAt:  hiredAt,
	}
	if err := s.employeeRepo.CreateEmployee(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// ListEmployees lists employees, optionally filtered by status and/or
// position.
func (s *EmployeeService) ListEmployees(status, position string) ([]*model.Employee, error) {
	return s.employeeRepo.GetAllEmployees(status, position)
}

// UpdateEmployee edits an employee. When the position changes and the
// employee has a linked account with a matching role name, the account's
// role follows the new position.
func (s *EmployeeService) UpdateEmployee(id int, req model.UpdateEmployeeRequest) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	positionChanged := employee.Position != req.Position

	employee.Name = req.Name
	employee.Position = req.Position
	employee.Status = req.Status

	if err := s.employeeRepo.UpdateEmployee(employee); err != nil {
		return nil, err
	}

	if positionChanged && employee.Username != "" && model.IsValidRole(model.Role(req.Position)) {
		if err := s.userService.SyncRoleByUsername(employee.Username, model.Role(req.Position)); err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"employee_id": employee.ID,
				"username":    employee.Username,
			}).Error("Failed to sync account role with new position")
			return nil, err
		}
	}

	return employee, nil
}
