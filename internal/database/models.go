package database

import (
	"strings"
	"time"
)

// UserRole represents the access level of a user account
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// User represents a login account. Not every user has an employee
// profile: the seeded admin account, for example, is a pure user.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanWrite is the capability predicate gating every write operation
// on the incident surface. Only administrators may write.
func (u *User) CanWrite() bool {
	return u.IsAdmin()
}

// Employee represents an employee profile, optionally linked to a
// login account via UserID
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"uniqueIndex" json:"user_id,omitempty"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	DNI       string    `gorm:"uniqueIndex;size:16;not null" json:"dni"`
	Email     string    `gorm:"size:254" json:"email"`
	Phone     string    `gorm:"size:15" json:"phone,omitempty"`
	Status    string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns "FirstName LastName"
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Initials returns the employee's uppercase initials for avatar display
func (e *Employee) Initials() string {
	var b strings.Builder
	if e.FirstName != "" {
		b.WriteString(strings.ToUpper(e.FirstName[:1]))
	}
	if e.LastName != "" {
		b.WriteString(strings.ToUpper(e.LastName[:1]))
	}
	return b.String()
}

// IncidentType is static reference data describing a kind of incident
// (e.g. "Tardanza"). Types are never deleted, only deactivated, so
// historical records always resolve their reference.
type IncidentType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Label       string    `gorm:"uniqueIndex;size:255;not null" json:"label"`
	Description string    `gorm:"type:text" json:"description"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Notification is an in-app notification for a user. Delivery of
// notifications is always best-effort: a failed insert is logged and
// never fails the operation that triggered it.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `gorm:"size:255" json:"link,omitempty"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides for explicit table naming
func (User) TableName() string {
	return "users"
}

func (Employee) TableName() string {
	return "employees"
}

func (IncidentType) TableName() string {
	return "incident_types"
}

func (Notification) TableName() string {
	return "notifications"
}
