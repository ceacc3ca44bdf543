package services

import (
	"errors"

	"github.com/nuevas-energias/hrcore/internal/database"
	"gorm.io/gorm"
)

// EmployeeService exposes the employee lookups the incident surface
// depends on. Employee lifecycle management itself lives elsewhere;
// this is the collaborator interface, not a full CRUD module.
type EmployeeService struct {
	db *gorm.DB
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

// EmployeeForUser resolves the employee profile linked to a user
// account. Pure user accounts (the seeded admin, for example) have no
// profile; that is not an error, the result is simply nil.
func EmployeeForUser(db *gorm.DB, userID uint) (*database.Employee, error) {
	var employee database.Employee
	err := db.Where("user_id = ?", userID).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// EmployeeForUser resolves the employee profile for a user account.
func (s *EmployeeService) EmployeeForUser(userID uint) (*database.Employee, error) {
	return EmployeeForUser(s.db, userID)
}

// GetEmployee retrieves an employee by id
func (s *EmployeeService) GetEmployee(id uint) (*database.Employee, error) {
	var employee database.Employee
	err := s.db.First(&employee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// ListEmployees returns a page of employees ordered by last name.
func (s *EmployeeService) ListEmployees(offset, limit int) ([]database.Employee, int64, error) {
	var total int64
	if err := s.db.Model(&database.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []database.Employee
	err := s.db.Order("last_name ASC, first_name ASC").
		Offset(offset).Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}
