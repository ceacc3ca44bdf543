package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nuevas-energias/hrcore/internal/database"
	"gorm.io/gorm"
)

// IncidentService owns the write path of the incident group lifecycle:
// group creation, correction and resolution. Every write runs inside
// one database transaction; state and previous_group_id are mutated
// nowhere else.
type IncidentService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewIncidentService creates a new incident service. The notifier may
// be nil, in which case no notifications are emitted.
func NewIncidentService(db *gorm.DB, notifier *NotificationService) *IncidentService {
	return &IncidentService{db: db, notifier: notifier}
}

// CreateGroupInput holds the shared fields of a new incident group.
// One record is created per employee; all of them carry these values.
type CreateGroupInput struct {
	IncidentTypeID uint
	EmployeeIDs    []uint
	OccurrenceDate time.Time
	Description    string
	Observations   string
}

// CreateGroup creates a fresh incident group: one OPEN record per
// employee, all sharing a newly generated group id. The registering
// employee is resolved from the actor's user account and may be nil
// for pure user accounts such as the seeded admin.
//
// Notification and email delivery happen after the transaction
// commits and never fail the creation.
func (s *IncidentService) CreateGroup(input CreateGroupInput, actorUserID uint) (*GroupSummary, error) {
	employeeIDs := dedupeIDs(input.EmployeeIDs)
	if len(employeeIDs) == 0 {
		return nil, ErrEmptyEmployeeList
	}

	var incidentType database.IncidentType
	err := s.db.First(&incidentType, input.IncidentTypeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !incidentType.Active) {
		return nil, ErrIncidentTypeInactive
	}
	if err != nil {
		return nil, err
	}

	var employees []database.Employee
	if err := s.db.Where("id IN ?", employeeIDs).Find(&employees).Error; err != nil {
		return nil, err
	}
	if len(employees) != len(employeeIDs) {
		return nil, ErrEmployeeNotFound
	}

	recordedBy, err := EmployeeForUser(s.db, actorUserID)
	if err != nil {
		return nil, err
	}

	groupID := uuid.NewString()
	records := make([]database.IncidentRecord, 0, len(employees))
	for _, employee := range employees {
		record := database.IncidentRecord{
			GroupID:        groupID,
			IncidentTypeID: incidentType.ID,
			EmployeeID:     employee.ID,
			OccurrenceDate: input.OccurrenceDate,
			Description:    input.Description,
			Observations:   input.Observations,
			State:          database.IncidentStateOpen,
		}
		if recordedBy != nil {
			record.RecordedByID = &recordedBy.ID
		}
		records = append(records, record)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.AnnounceNewIncident(employees, incidentType.Label, groupID, input.OccurrenceDate, input.Description)
	}

	return s.GetGroupSummary(groupID)
}

// Correct supersedes an open group with a brand-new one. In a single
// transaction it creates the successor group (previous_group_id set to
// the original), inserts an auto-generated resolution for the original
// group, and cascades every original record to CLOSED. Either all of
// it commits or none of it does.
//
// The actor must resolve to an employee profile: corrections are audit
// artifacts and need a responsible person, so pure user accounts are
// rejected with ErrNoEmployeeProfile before anything is written.
func (s *IncidentService) Correct(originalGroupID string, input CreateGroupInput, actorUserID uint) (*GroupSummary, error) {
	actor, err := EmployeeForUser(s.db, actorUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrNoEmployeeProfile
	}

	employeeIDs := dedupeIDs(input.EmployeeIDs)
	if len(employeeIDs) == 0 {
		return nil, ErrEmptyEmployeeList
	}

	var incidentType database.IncidentType
	err = s.db.First(&incidentType, input.IncidentTypeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !incidentType.Active) {
		return nil, ErrIncidentTypeInactive
	}
	if err != nil {
		return nil, err
	}

	var employees []database.Employee
	if err := s.db.Where("id IN ?", employeeIDs).Find(&employees).Error; err != nil {
		return nil, err
	}
	if len(employees) != len(employeeIDs) {
		return nil, ErrEmployeeNotFound
	}

	newGroupID := uuid.NewString()
	var originals []database.IncidentRecord

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-read the original group inside the transaction so a racing
		// correction or resolution surfaces as a conflict, not a double
		// close.
		if err := tx.Where("group_id = ?", originalGroupID).Find(&originals).Error; err != nil {
			return err
		}
		if len(originals) == 0 {
			return ErrGroupNotFound
		}
		for _, record := range originals {
			if record.State.Terminal() {
				return ErrGroupClosed
			}
		}

		records := make([]database.IncidentRecord, 0, len(employees))
		for _, employee := range employees {
			records = append(records, database.IncidentRecord{
				GroupID:         newGroupID,
				PreviousGroupID: &originalGroupID,
				IncidentTypeID:  incidentType.ID,
				EmployeeID:      employee.ID,
				OccurrenceDate:  input.OccurrenceDate,
				Description:     input.Description,
				Observations:    input.Observations,
				RecordedByID:    &actor.ID,
				State:           database.IncidentStateOpen,
			})
		}
		if err := tx.Create(&records).Error; err != nil {
			return err
		}

		resolution := database.Resolution{
			GroupID:       originalGroupID,
			Description:   fmt.Sprintf("Corregido por el grupo de incidentes %s", newGroupID),
			ResponsibleID: &actor.ID,
		}
		if err := tx.Create(&resolution).Error; err != nil {
			// The unique index on resolutions.group_id is the backstop
			// against two correctors racing past the state check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateResolution
			}
			return err
		}

		return tx.Model(&database.IncidentRecord{}).
			Where("group_id = ?", originalGroupID).
			Update("state", database.IncidentStateClosed).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.AnnounceNewIncident(employees, incidentType.Label, newGroupID, input.OccurrenceDate, input.Description)
		s.announceClosure(originals, originalGroupID)
	}

	return s.GetGroupSummary(newGroupID)
}

// Resolve closes a group directly. The resolution insert and the
// cascade of every record in the group to CLOSED form one transaction;
// a reader never sees closed records without a resolution row.
func (s *IncidentService) Resolve(groupID, description string, actorUserID uint) (*database.Resolution, error) {
	if description == "" {
		return nil, ErrEmptyDescription
	}

	// The responsible employee is optional: a resolution filed by a
	// pure user account is stored with responsible = null.
	responsible, err := EmployeeForUser(s.db, actorUserID)
	if err != nil {
		return nil, err
	}

	var records []database.IncidentRecord
	resolution := database.Resolution{
		GroupID:     groupID,
		Description: description,
	}
	if responsible != nil {
		resolution.ResponsibleID = &responsible.ID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Find(&records).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return ErrGroupNotFound
		}

		var existing int64
		if err := tx.Model(&database.Resolution{}).Where("group_id = ?", groupID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateResolution
		}
		for _, record := range records {
			if record.State.Terminal() {
				return ErrGroupClosed
			}
		}

		if err := tx.Create(&resolution).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateResolution
			}
			return err
		}

		return tx.Model(&database.IncidentRecord{}).
			Where("group_id = ?", groupID).
			Update("state", database.IncidentStateClosed).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.announceClosure(records, groupID)
	}

	if responsible != nil {
		resolution.Responsible = responsible
	}
	return &resolution, nil
}

// announceClosure notifies every employee in the group that their
// incident was resolved. Best-effort only.
func (s *IncidentService) announceClosure(records []database.IncidentRecord, groupID string) {
	var employees []database.Employee
	var typeLabel string

	employeeIDs := make([]uint, 0, len(records))
	for _, record := range records {
		employeeIDs = append(employeeIDs, record.EmployeeID)
	}
	if err := s.db.Where("id IN ?", dedupeIDs(employeeIDs)).Find(&employees).Error; err != nil {
		// Notifications are not worth failing the caller over.
		return
	}
	if len(records) > 0 {
		var incidentType database.IncidentType
		if err := s.db.First(&incidentType, records[0].IncidentTypeID).Error; err == nil {
			typeLabel = incidentType.Label
		}
	}

	s.notifier.AnnounceResolved(employees, typeLabel, groupID)
}

// dedupeIDs removes duplicate ids while preserving order.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
