package database

import "time"

// IncidentState represents the lifecycle state of an incident record.
// Records in a group always share one state and transition together.
type IncidentState string

const (
	IncidentStateOpen      IncidentState = "OPEN"
	IncidentStateClosed    IncidentState = "CLOSED"
	IncidentStateCorrected IncidentState = "CORRECTED"
)

// Terminal reports whether the state admits no further transitions.
// A closed or corrected group can neither be corrected nor resolved.
func (s IncidentState) Terminal() bool {
	return s != IncidentStateOpen
}

// IncidentRecord is one (group, employee) row. Every record created in
// a single operation shares the same GroupID and the same incident
// type, date, description, observations and registrar; the group is
// the unit that transitions state, never the individual record.
//
// GroupID and PreviousGroupID are correlation keys, not foreign keys:
// Resolution and IncidentRecord are joined only by value equality on
// the group identifier.
type IncidentRecord struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	GroupID         string        `gorm:"size:36;not null;index" json:"group_id"`
	PreviousGroupID *string       `gorm:"size:36;index" json:"previous_group_id,omitempty"`
	IncidentTypeID  uint          `gorm:"not null;index" json:"incident_type_id"`
	EmployeeID      uint          `gorm:"not null;index" json:"employee_id"`
	OccurrenceDate  time.Time     `gorm:"type:date;not null" json:"occurrence_date"`
	Description     string        `gorm:"size:255" json:"description"`
	Observations    string        `gorm:"size:255" json:"observations"`
	RecordedByID    *uint         `json:"recorded_by_id,omitempty"`
	State           IncidentState `gorm:"type:varchar(20);not null;default:'OPEN'" json:"state"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Relationships
	IncidentType IncidentType `gorm:"foreignKey:IncidentTypeID" json:"incident_type,omitempty"`
	Employee     Employee     `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	RecordedBy   *Employee    `gorm:"foreignKey:RecordedByID" json:"recorded_by,omitempty"`
	Statements   []Statement  `gorm:"foreignKey:RecordID" json:"statements,omitempty"`
}

// Resolution is the terminal artifact that closes a group. The unique
// index on GroupID enforces at most one resolution per group; a second
// writer racing on the same group fails on this constraint.
type Resolution struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	GroupID       string    `gorm:"size:36;uniqueIndex;not null" json:"group_id"`
	Description   string    `gorm:"size:255;not null" json:"description"`
	ResponsibleID *uint     `json:"responsible_id,omitempty"`
	Active        bool      `gorm:"default:true" json:"active"`
	CreatedAt     time.Time `json:"created_at"`

	Responsible *Employee `gorm:"foreignKey:ResponsibleID" json:"responsible,omitempty"`
}

// Statement (descargo) is an employee-authored response attached to a
// single incident record. Presentation aggregates statements per
// group, but storage stays per record.
type Statement struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RecordID       uint      `gorm:"not null;index" json:"record_id"`
	AuthorID       *uint     `json:"author_id,omitempty"`
	Content        string    `gorm:"size:255;not null" json:"content"`
	AttachmentPath string    `gorm:"size:255" json:"attachment_path,omitempty"`
	Active         bool      `gorm:"default:true" json:"active"`
	CreatedAt      time.Time `json:"created_at"`

	Author *Employee `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (IncidentRecord) TableName() string {
	return "incident_records"
}

func (Resolution) TableName() string {
	return "resolutions"
}

func (Statement) TableName() string {
	return "statements"
}
