// Package testhelpers provides data builders for domain rows
package testhelpers

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nuevas-energias/hrcore/internal/database"
	"gorm.io/gorm"
)

// seq provides unique suffixes so builders never collide on unique
// columns (username, dni) within one test database.
var seq uint64

func nextSeq() uint64 {
	return atomic.AddUint64(&seq, 1)
}

// ========================================
// User Builder
// ========================================

// UserBuilder builds User rows for testing
type UserBuilder struct {
	user database.User
}

// NewUserBuilder creates a new user builder with defaults
func NewUserBuilder() *UserBuilder {
	n := nextSeq()
	return &UserBuilder{
		user: database.User{
			Username:     fmt.Sprintf("user-%d", n),
			PasswordHash: "$2a$10$AIDo92pISXdLfrzf54XaUuePR.sF9Yq2agN.8upP0y9fmjCgbBohy", // bcrypt("password")
			Role:         database.RoleEmployee,
			Active:       true,
		},
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.user.Username = username
	return b
}

// WithPasswordHash sets the password hash
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.user.PasswordHash = hash
	return b
}

// AsAdmin gives the user the admin role
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.user.Role = database.RoleAdmin
	return b
}

// Inactive marks the account as deactivated
func (b *UserBuilder) Inactive() *UserBuilder {
	b.user.Active = false
	return b
}

// Build returns the constructed user
func (b *UserBuilder) Build() database.User {
	return b.user
}

// Create inserts the user and returns the stored row
func (b *UserBuilder) Create(t *testing.T, db *gorm.DB) *database.User {
	t.Helper()
	user := b.user
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	// Active has gorm default:true, so Create drops a zero-value false
	// and backfills the struct from the column default; persist it
	// explicitly.
	if !b.user.Active {
		if err := db.Model(&user).Update("active", false).Error; err != nil {
			t.Fatalf("failed to deactivate test user: %v", err)
		}
		user.Active = false
	}
	return &user
}

// ========================================
// Employee Builder
// ========================================

// EmployeeBuilder builds Employee rows for testing
type EmployeeBuilder struct {
	employee database.Employee
}

// NewEmployeeBuilder creates a new employee builder with defaults
func NewEmployeeBuilder() *EmployeeBuilder {
	n := nextSeq()
	return &EmployeeBuilder{
		employee: database.Employee{
			FirstName: "Juan",
			LastName:  fmt.Sprintf("Pérez %d", n),
			DNI:       fmt.Sprintf("%08d", 10000000+n),
			Email:     fmt.Sprintf("empleado%d@example.com", n),
			Status:    "active",
		},
	}
}

// WithName sets first and last name
func (b *EmployeeBuilder) WithName(first, last string) *EmployeeBuilder {
	b.employee.FirstName = first
	b.employee.LastName = last
	return b
}

// WithDNI sets the DNI
func (b *EmployeeBuilder) WithDNI(dni string) *EmployeeBuilder {
	b.employee.DNI = dni
	return b
}

// WithEmail sets the email address
func (b *EmployeeBuilder) WithEmail(email string) *EmployeeBuilder {
	b.employee.Email = email
	return b
}

// WithUser links the employee to a login account
func (b *EmployeeBuilder) WithUser(user *database.User) *EmployeeBuilder {
	b.employee.UserID = &user.ID
	return b
}

// Build returns the constructed employee
func (b *EmployeeBuilder) Build() database.Employee {
	return b.employee
}

// Create inserts the employee and returns the stored row
func (b *EmployeeBuilder) Create(t *testing.T, db *gorm.DB) *database.Employee {
	t.Helper()
	employee := b.employee
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return &employee
}

// ========================================
// Incident Type Builder
// ========================================

// IncidentTypeBuilder builds IncidentType rows for testing
type IncidentTypeBuilder struct {
	incidentType database.IncidentType
}

// NewIncidentTypeBuilder creates a new incident type builder with defaults
func NewIncidentTypeBuilder() *IncidentTypeBuilder {
	return &IncidentTypeBuilder{
		incidentType: database.IncidentType{
			Label:       fmt.Sprintf("Tardanza %d", nextSeq()),
			Description: "Llegada fuera de horario",
			Active:      true,
		},
	}
}

// WithLabel sets the label
func (b *IncidentTypeBuilder) WithLabel(label string) *IncidentTypeBuilder {
	b.incidentType.Label = label
	return b
}

// Inactive marks the type as deactivated
func (b *IncidentTypeBuilder) Inactive() *IncidentTypeBuilder {
	b.incidentType.Active = false
	return b
}

// Build returns the constructed incident type
func (b *IncidentTypeBuilder) Build() database.IncidentType {
	return b.incidentType
}

// Create inserts the incident type and returns the stored row
func (b *IncidentTypeBuilder) Create(t *testing.T, db *gorm.DB) *database.IncidentType {
	t.Helper()
	incidentType := b.incidentType
	if err := db.Create(&incidentType).Error; err != nil {
		t.Fatalf("failed to create test incident type: %v", err)
	}
	// Active has gorm default:true, so Create drops a zero-value false
	// and backfills the struct from the column default; persist it
	// explicitly.
	if !b.incidentType.Active {
		if err := db.Model(&incidentType).Update("active", false).Error; err != nil {
			t.Fatalf("failed to deactivate test incident type: %v", err)
		}
		incidentType.Active = false
	}
	return &incidentType
}

// ========================================
// Incident Record Builder
// ========================================

// IncidentRecordBuilder builds IncidentRecord rows directly, for read
// path tests that don't want to go through the write services.
type IncidentRecordBuilder struct {
	record database.IncidentRecord
}

// NewIncidentRecordBuilder creates a record builder with defaults. The
// group id, incident type and employee must be supplied.
func NewIncidentRecordBuilder(groupID string, incidentTypeID, employeeID uint) *IncidentRecordBuilder {
	return &IncidentRecordBuilder{
		record: database.IncidentRecord{
			GroupID:        groupID,
			IncidentTypeID: incidentTypeID,
			EmployeeID:     employeeID,
			OccurrenceDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			Description:    "Incidente de prueba",
			State:          database.IncidentStateOpen,
		},
	}
}

// WithState sets the record state
func (b *IncidentRecordBuilder) WithState(state database.IncidentState) *IncidentRecordBuilder {
	b.record.State = state
	return b
}

// WithPreviousGroup links the record to a corrected predecessor group
func (b *IncidentRecordBuilder) WithPreviousGroup(groupID string) *IncidentRecordBuilder {
	b.record.PreviousGroupID = &groupID
	return b
}

// WithDescription sets the description
func (b *IncidentRecordBuilder) WithDescription(description string) *IncidentRecordBuilder {
	b.record.Description = description
	return b
}

// Build returns the constructed record
func (b *IncidentRecordBuilder) Build() database.IncidentRecord {
	return b.record
}

// Create inserts the record and returns the stored row
func (b *IncidentRecordBuilder) Create(t *testing.T, db *gorm.DB) *database.IncidentRecord {
	t.Helper()
	record := b.record
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("failed to create test incident record: %v", err)
	}
	return &record
}
