package services

import (
	"errors"
	"time"

	"github.com/nuevas-energias/hrcore/internal/database"
	"gorm.io/gorm"
)

// EmployeeRef is the compact employee representation embedded in group
// views.
type EmployeeRef struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DNI       string `json:"dni"`
}

// StatementView is a statement as presented inside a group view, with
// basic author data resolved.
type StatementView struct {
	ID        uint         `json:"id"`
	RecordID  uint         `json:"record_id"`
	Author    *EmployeeRef `json:"author,omitempty"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

// ResolutionView is the resolution attached to a group detail.
type ResolutionView struct {
	ID          uint         `json:"id"`
	GroupID     string       `json:"group_id"`
	Description string       `json:"description"`
	Responsible *EmployeeRef `json:"responsible,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// GroupSummary aggregates the flat records of one group into a single
// presentation unit: the shared fields (identical across members by
// invariant), the set of implicated employees, the chain pointer to a
// corrected predecessor, and the union of statements across records.
type GroupSummary struct {
	GroupID         string                 `json:"group_id"`
	PreviousGroupID *string                `json:"previous_group_id,omitempty"`
	IncidentType    database.IncidentType  `json:"incident_type"`
	Employees       []EmployeeRef          `json:"employees"`
	OccurrenceDate  time.Time              `json:"occurrence_date"`
	Description     string                 `json:"description"`
	Observations    string                 `json:"observations"`
	RecordedBy      *EmployeeRef           `json:"recorded_by,omitempty"`
	State           database.IncidentState `json:"state"`
	Statements      []StatementView        `json:"statements"`
}

// GroupDetail is a summary plus the group's resolution, if any.
type GroupDetail struct {
	GroupSummary
	Resolution *ResolutionView `json:"resolution"`
}

// ListGroups partitions all incident records by group id and produces
// one summary per group, newest group first. The aggregation is pure:
// it reads and reshapes, it never mutates state. If forEmployeeID is
// set, only groups the employee is part of are returned.
func (s *IncidentService) ListGroups(forEmployeeID *uint) ([]GroupSummary, error) {
	records, err := s.loadRecords(s.db)
	if err != nil {
		return nil, err
	}

	var memberGroups map[string]bool
	if forEmployeeID != nil {
		memberGroups = make(map[string]bool)
		for _, record := range records {
			if record.EmployeeID == *forEmployeeID {
				memberGroups[record.GroupID] = true
			}
		}
	}

	// Scatter rows, gather by group id. Insertion order of the keys is
	// preserved so the listing is stable for a fixed snapshot.
	byGroup := make(map[string][]database.IncidentRecord)
	order := make([]string, 0)
	for _, record := range records {
		if memberGroups != nil && !memberGroups[record.GroupID] {
			continue
		}
		if _, seen := byGroup[record.GroupID]; !seen {
			order = append(order, record.GroupID)
		}
		byGroup[record.GroupID] = append(byGroup[record.GroupID], record)
	}

	summaries := make([]GroupSummary, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		summaries = append(summaries, buildGroupSummary(byGroup[order[i]]))
	}
	return summaries, nil
}

// GetGroupDetail returns the aggregated view of one group, including
// its resolution when one exists. If forEmployeeID is set and the
// employee is not part of the group, the group is reported as not
// found rather than leaking its existence.
func (s *IncidentService) GetGroupDetail(groupID string, forEmployeeID *uint) (*GroupDetail, error) {
	records, err := s.loadRecords(s.db.Where("group_id = ?", groupID))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrGroupNotFound
	}

	if forEmployeeID != nil {
		member := false
		for _, record := range records {
			if record.EmployeeID == *forEmployeeID {
				member = true
				break
			}
		}
		if !member {
			return nil, ErrGroupNotFound
		}
	}

	detail := &GroupDetail{GroupSummary: buildGroupSummary(records)}

	var resolution database.Resolution
	err = s.db.Preload("Responsible").Where("group_id = ?", groupID).First(&resolution).Error
	if err == nil {
		detail.Resolution = buildResolutionView(&resolution)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return detail, nil
}

// GetGroupSummary returns the aggregated summary of one group.
func (s *IncidentService) GetGroupSummary(groupID string) (*GroupSummary, error) {
	records, err := s.loadRecords(s.db.Where("group_id = ?", groupID))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrGroupNotFound
	}
	summary := buildGroupSummary(records)
	return &summary, nil
}

// loadRecords fetches incident records with everything the group views
// need resolved in one pass.
func (s *IncidentService) loadRecords(query *gorm.DB) ([]database.IncidentRecord, error) {
	var records []database.IncidentRecord
	err := query.
		Preload("IncidentType").
		Preload("Employee").
		Preload("RecordedBy").
		Preload("Statements", "active = ?", true).
		Preload("Statements.Author").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// buildGroupSummary collapses the records of one group. The shared
// fields are taken from the first member; they are invariant within a
// group by construction.
func buildGroupSummary(records []database.IncidentRecord) GroupSummary {
	first := records[0]

	summary := GroupSummary{
		GroupID:         first.GroupID,
		PreviousGroupID: first.PreviousGroupID,
		IncidentType:    first.IncidentType,
		OccurrenceDate:  first.OccurrenceDate,
		Description:     first.Description,
		Observations:    first.Observations,
		RecordedBy:      employeeRef(first.RecordedBy),
		State:           first.State,
		Employees:       make([]EmployeeRef, 0, len(records)),
		Statements:      make([]StatementView, 0),
	}

	for _, record := range records {
		summary.Employees = append(summary.Employees, *employeeRef(&record.Employee))
		for _, statement := range record.Statements {
			summary.Statements = append(summary.Statements, StatementView{
				ID:        statement.ID,
				RecordID:  statement.RecordID,
				Author:    employeeRef(statement.Author),
				Content:   statement.Content,
				CreatedAt: statement.CreatedAt,
			})
		}
	}

	return summary
}

func buildResolutionView(resolution *database.Resolution) *ResolutionView {
	return &ResolutionView{
		ID:          resolution.ID,
		GroupID:     resolution.GroupID,
		Description: resolution.Description,
		Responsible: employeeRef(resolution.Responsible),
		CreatedAt:   resolution.CreatedAt,
	}
}

func employeeRef(employee *database.Employee) *EmployeeRef {
	if employee == nil || employee.ID == 0 {
		return nil
	}
	return &EmployeeRef{
		ID:        employee.ID,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		DNI:       employee.DNI,
	}
}
