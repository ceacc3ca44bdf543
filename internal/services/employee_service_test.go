package services

import (
	"errors"
	"testing"

	"github.com/nuevas-energias/hrcore/internal/testhelpers"
)

func TestEmployeeForUser(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewEmployeeService(db)

	linkedUser := testhelpers.NewUserBuilder().Create(t, db)
	employee := testhelpers.NewEmployeeBuilder().WithUser(linkedUser).Create(t, db)
	pureUser := testhelpers.NewUserBuilder().AsAdmin().Create(t, db)

	resolved, err := svc.EmployeeForUser(linkedUser.ID)
	if err != nil {
		t.Fatalf("EmployeeForUser failed: %v", err)
	}
	if resolved == nil || resolved.ID != employee.ID {
		t.Error("linked user should resolve to their employee profile")
	}

	// A pure user account has no profile; that is not an error.
	resolved, err = svc.EmployeeForUser(pureUser.ID)
	if err != nil {
		t.Fatalf("EmployeeForUser failed: %v", err)
	}
	if resolved != nil {
		t.Error("pure user should resolve to nil")
	}
}

func TestGetEmployee(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewEmployeeService(db)

	employee := testhelpers.NewEmployeeBuilder().Create(t, db)

	found, err := svc.GetEmployee(employee.ID)
	if err != nil {
		t.Fatalf("GetEmployee failed: %v", err)
	}
	if found.DNI != employee.DNI {
		t.Errorf("DNI = %q, want %q", found.DNI, employee.DNI)
	}

	if _, err := svc.GetEmployee(99999); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("got %v, want ErrEmployeeNotFound", err)
	}
}

func TestListEmployees_PagedByLastName(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewEmployeeService(db)

	testhelpers.NewEmployeeBuilder().WithName("Ana", "Zárate").Create(t, db)
	testhelpers.NewEmployeeBuilder().WithName("Luis", "Acosta").Create(t, db)
	testhelpers.NewEmployeeBuilder().WithName("Marta", "Benítez").Create(t, db)

	page, total, err := svc.ListEmployees(0, 2)
	if err != nil {
		t.Fatalf("ListEmployees failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	if page[0].LastName != "Acosta" || page[1].LastName != "Benítez" {
		t.Errorf("unexpected order: %s, %s", page[0].LastName, page[1].LastName)
	}

	rest, _, err := svc.ListEmployees(2, 2)
	if err != nil {
		t.Fatalf("ListEmployees failed: %v", err)
	}
	if len(rest) != 1 || rest[0].LastName != "Zárate" {
		t.Error("second page should hold the remaining employee")
	}
}
