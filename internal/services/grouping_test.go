package services

import (
	"errors"
	"testing"

	"github.com/nuevas-energias/hrcore/internal/database"
	"github.com/nuevas-energias/hrcore/internal/testhelpers"
)

func TestListGroups_AggregatesAndOrders(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.CreateGroup(f.input(f.emps[0], f.emps[1]), f.adminUser.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	second, err := f.svc.CreateGroup(f.input(f.emps[2]), f.adminUser.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	summaries, err := f.svc.ListGroups(nil)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	// Newest group first.
	if summaries[0].GroupID != second.GroupID || summaries[1].GroupID != first.GroupID {
		t.Error("groups should be listed newest first")
	}
	if len(summaries[1].Employees) != 2 {
		t.Errorf("first group should list 2 employees, got %d", len(summaries[1].Employees))
	}
	if summaries[1].IncidentType.ID != f.itype.ID {
		t.Error("summary should resolve the incident type")
	}
}

func TestListGroups_EmployeeScoping(t *testing.T) {
	f := newFixture(t)

	mine, err := f.svc.CreateGroup(f.input(f.emps[0], f.emps[1]), f.adminUser.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := f.svc.CreateGroup(f.input(f.emps[2]), f.adminUser.ID); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	summaries, err := f.svc.ListGroups(&f.emps[0].ID)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].GroupID != mine.GroupID {
		t.Fatalf("employee should only see their own group, got %d summaries", len(summaries))
	}
	// The scoped view still shows every implicated colleague.
	if len(summaries[0].Employees) != 2 {
		t.Errorf("scoped summary should keep all members, got %d", len(summaries[0].Employees))
	}
}

func TestGetGroupDetail_NonMemberGetsNotFound(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.CreateGroup(f.input(f.emps[0]), f.adminUser.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if _, err := f.svc.GetGroupDetail(summary.GroupID, &f.emps[1].ID); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("non-member detail: got %v, want ErrGroupNotFound", err)
	}
	if _, err := f.svc.GetGroupDetail(summary.GroupID, &f.emps[0].ID); err != nil {
		t.Errorf("member detail should succeed, got %v", err)
	}
}

func TestGetGroupDetail_IncludesResolution(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.CreateGroup(f.input(f.emps[0]), f.adminUser.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	detail, err := f.svc.GetGroupDetail(summary.GroupID, nil)
	if err != nil {
		t.Fatalf("GetGroupDetail failed: %v", err)
	}
	if detail.Resolution != nil {
		t.Error("open group should have no resolution")
	}

	if _, err := f.svc.Resolve(summary.GroupID, "Amonestación verbal", f.adminUser.ID); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	detail, err = f.svc.GetGroupDetail(summary.GroupID, nil)
	if err != nil {
		t.Fatalf("GetGroupDetail failed: %v", err)
	}
	if detail.Resolution == nil {
		t.Fatal("closed group should expose its resolution")
	}
	if detail.Resolution.Description != "Amonestación verbal" {
		t.Errorf("resolution description = %q", detail.Resolution.Description)
	}
	if detail.Resolution.Responsible == nil || detail.Resolution.Responsible.ID != f.adminEmp.ID {
		t.Error("resolution should resolve the responsible employee")
	}
}

func TestGetGroupDetail_UnionOfStatements(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.CreateGroup(f.input(f.emps[0], f.emps[1]), f.adminUser.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	records := f.records(t, summary.GroupID)

	statements := NewStatementService(f.db)
	for _, record := range records {
		user := testhelpers.NewUserBuilder().Create(t, f.db)
		if err := f.db.Model(&database.Employee{}).Where("id = ?", record.EmployeeID).Update("user_id", user.ID).Error; err != nil {
			t.Fatalf("failed to link employee to user: %v", err)
		}
		if _, err := statements.CreateStatement(record.ID, "No estuve presente ese día", "", user.ID, false); err != nil {
			t.Fatalf("CreateStatement failed: %v", err)
		}
	}

	detail, err := f.svc.GetGroupDetail(summary.GroupID, nil)
	if err != nil {
		t.Fatalf("GetGroupDetail failed: %v", err)
	}
	if len(detail.Statements) != 2 {
		t.Fatalf("detail should union statements across records, got %d", len(detail.Statements))
	}
	seen := map[uint]bool{}
	for _, s := range detail.Statements {
		seen[s.RecordID] = true
	}
	if len(seen) != 2 {
		t.Error("statements should come from both records")
	}
}

func TestGetGroupDetail_ReadsAreIdempotent(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.CreateGroup(f.input(f.emps...), f.adminUser.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	first, err := f.svc.GetGroupDetail(summary.GroupID, nil)
	if err != nil {
		t.Fatalf("GetGroupDetail failed: %v", err)
	}
	second, err := f.svc.GetGroupDetail(summary.GroupID, nil)
	if err != nil {
		t.Fatalf("GetGroupDetail failed: %v", err)
	}

	if len(first.Employees) != len(second.Employees) || first.State != second.State {
		t.Error("repeated reads must return the same aggregation")
	}
	if got := len(f.records(t, summary.GroupID)); got != 3 {
		t.Errorf("reads must not mutate: expected 3 records, got %d", got)
	}
}
