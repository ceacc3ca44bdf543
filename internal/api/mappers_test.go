package api

import (
	"testing"

	"github.com/nuevas-energias/hrcore/internal/database"
)

func TestEmployeeToListItem(t *testing.T) {
	userID := uint(7)
	employee := database.Employee{
		ID:        3,
		UserID:    &userID,
		FirstName: "Ana",
		LastName:  "García",
		DNI:       "30111222",
		Email:     "ana.garcia@example.com",
		Phone:     "1155554444",
		Status:    "active",
	}

	item := EmployeeToListItem(employee)

	if item.ID != 3 {
		t.Errorf("ID = %d, want 3", item.ID)
	}
	if item.FirstName != "Ana" || item.LastName != "García" {
		t.Errorf("name = %q %q, want Ana García", item.FirstName, item.LastName)
	}
	if item.DNI != "30111222" {
		t.Errorf("DNI = %q, want 30111222", item.DNI)
	}
	if item.Email != "ana.garcia@example.com" {
		t.Errorf("Email = %q", item.Email)
	}
	if item.Status != "active" {
		t.Errorf("Status = %q, want active", item.Status)
	}
}

func TestEmployeesToListItems(t *testing.T) {
	employees := []database.Employee{
		{ID: 1, DNI: "1"},
		{ID: 2, DNI: "2"},
		{ID: 3, DNI: "3"},
	}

	items := EmployeesToListItems(employees)

	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, item := range items {
		if item.ID != employees[i].ID {
			t.Errorf("items[%d].ID = %d, want %d", i, item.ID, employees[i].ID)
		}
	}
}

func TestEmployeesToListItems_Empty(t *testing.T) {
	items := EmployeesToListItems([]database.Employee{})
	if len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}
}
